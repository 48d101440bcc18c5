package portfolio

import (
	"portfolio/frontend/shared/html"
	"portfolio/infrastructure/config"
)

// ProfileFromConfig maps the configured owner onto the rendered profile.
func ProfileFromConfig(o config.OwnerConfig) Profile {
	return Profile{
		Owner: html.Owner{
			Name:     o.Name,
			Email:    o.Email,
			GitHub:   o.GitHub,
			LinkedIn: o.LinkedIn,
		},
		Roles:    o.Roles,
		Tagline:  o.Tagline,
		Location: o.Location,
	}
}
