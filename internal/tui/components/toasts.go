package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/herodex/internal/notify"
	"github.com/mmcdole/herodex/internal/tui/styles"
	"github.com/muesli/reflow/wordwrap"
)

// ToastWidth is the outer width of one notification
const ToastWidth = 38

// RenderToasts stacks notifications oldest first
func RenderToasts(items []notify.Notification) string {
	if len(items) == 0 {
		return ""
	}
	rendered := make([]string, len(items))
	for i, n := range items {
		rendered[i] = RenderToast(n)
	}
	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}

// RenderToast renders one notification
func RenderToast(n notify.Notification) string {
	style := toastStyle(n.Kind)
	title := style.GetBorderTopForeground()
	heading := lipgloss.NewStyle().Foreground(title).Bold(true).
		Render(n.Kind.Icon() + " " + n.Kind.Title())
	return style.Render(heading + "\n" + wordwrap.String(n.Message, ToastWidth-4))
}

func toastStyle(k notify.Kind) lipgloss.Style {
	switch k {
	case notify.Success:
		return styles.ToastSuccessStyle
	case notify.Error:
		return styles.ToastErrorStyle
	case notify.Warning:
		return styles.ToastWarningStyle
	default:
		return styles.ToastInfoStyle
	}
}
