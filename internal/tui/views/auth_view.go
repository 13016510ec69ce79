package views

import (
	"fmt"
	"strings"

	"github.com/matheus3301/wpnew/internal/rpc"
	"github.com/matheus3301/wpnew/internal/tui/ui"
	"github.com/rivo/tview"
	qrcode "github.com/skip2/go-qrcode"
)

// Auth event types sent by the daemon.
const (
	authQRCode        = "qr_code"
	authAuthenticated = "authenticated"
	authFailed        = "auth_failed"
	authTimeout       = "timeout"
)

// AuthView walks the user through linking this device by QR code.
type AuthView struct {
	*tview.TextView
	theme *ui.Theme
	codes int
}

// NewAuthView creates a new auth view.
func NewAuthView(theme *ui.Theme) *AuthView {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	tv.SetBorder(true)
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)
	tv.SetTitle(" Link Device ")
	tv.SetTitleColor(theme.TitleColor)

	return &AuthView{
		TextView: tv,
		theme:    theme,
	}
}

// Name implements Component.
func (av *AuthView) Name() string { return "auth" }

// Title implements ui.Titled.
func (av *AuthView) Title() string { return "Link Device" }

// Init implements Component.
func (av *AuthView) Init() {}

// Start implements Component.
func (av *AuthView) Start() {
	av.codes = 0
	av.ShowMessage("Starting authentication...")
}

// Stop implements Component.
func (av *AuthView) Stop() {}

// Hints implements Component.
func (av *AuthView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Esc", Description: "Back"},
		{Key: "q", Description: "Quit"},
	}
}

// ShowEvent renders one step of the pairing flow and reports whether the
// flow is over and whether it succeeded.
func (av *AuthView) ShowEvent(evt *rpc.AuthEvent) (done, ok bool) {
	switch evt.Type {
	case authQRCode:
		av.codes++
		av.ShowQR(evt.QRCode)
		return false, false
	case authAuthenticated:
		av.ShowMessage("Linked! Loading conversations...")
		return true, true
	case authFailed, authTimeout:
		msg := evt.Message
		if msg == "" {
			msg = "Authentication failed"
		}
		if evt.Type == authTimeout {
			msg = "QR code expired. Restart wpnew to try again."
		}
		av.ShowMessage("[red]" + tview.Escape(msg) + "[-]")
		return true, false
	default:
		return false, false
	}
}

// ShowQR renders a QR code string as a scannable block.
func (av *AuthView) ShowQR(content string) {
	av.Clear()
	_, _ = fmt.Fprintf(av,
		"\n  Open WhatsApp > Linked devices > Link a device and scan:\n\n%s\n  [::d]code %d, refreshes automatically[-:-:-]",
		renderQR(content), av.codes)
}

// ShowMessage displays a status message.
func (av *AuthView) ShowMessage(msg string) {
	av.Clear()
	_, _ = fmt.Fprintf(av, "\n\n%s", msg)
}

// renderQR converts a string to a compact QR code using Unicode half-block
// characters. Two bitmap rows become one terminal line.
func renderQR(content string) string {
	qr, err := qrcode.New(content, qrcode.Low)
	if err != nil {
		return "  (QR generation failed: " + err.Error() + ")"
	}

	bitmap := qr.Bitmap()
	var sb strings.Builder
	for y := 0; y < len(bitmap); y += 2 {
		sb.WriteString("  ")
		for x := range bitmap[y] {
			top := bitmap[y][x]
			bot := y+1 < len(bitmap) && bitmap[y+1][x]
			switch {
			case top && bot:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bot:
				sb.WriteRune('▄')
			default:
				sb.WriteRune(' ')
			}
		}
		sb.WriteRune('\n')
	}
	return sb.String()
}
