package nav

import "portfolio/models"

// Dashboard tabs in display order.
const (
	TabProjects     = "projects"
	TabMessages     = "messages"
	TabResume       = "resume"
	TabCertificates = "certificates"
	TabActivity     = "activity"
)

var Tabs = []string{TabProjects, TabMessages, TabResume, TabCertificates, TabActivity}

// NormalizeTab falls back to the projects tab for unknown values.
func NormalizeTab(raw string) string {
	for _, t := range Tabs {
		if t == raw {
			return raw
		}
	}
	return TabProjects
}

// TopNavData is shared with admin page renderers.
type TopNavData struct {
	Username    string
	ActiveTab   string
	UnreadCount int64
}

func BuildTopNavData(session models.Session, activeTab string) TopNavData {
	return TopNavData{Username: session.Username, ActiveTab: NormalizeTab(activeTab)}
}

// PublicLink is one entry of the public site header.
type PublicLink struct {
	Label  string
	Anchor string
}

var PublicLinks = []PublicLink{
	{Label: "Home", Anchor: "#home"},
	{Label: "About", Anchor: "#about"},
	{Label: "Projects", Anchor: "#projects"},
	{Label: "Certificates", Anchor: "#certificates"},
	{Label: "Contact", Anchor: "#contact"},
}
