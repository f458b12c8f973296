package views

// Site holds the site-wide settings the default components need.
type Site struct {
	Name            string // shown in <title> and og:site_name
	URL             string // canonical base URL
	Description     string // fallback meta description
	Lang            string // html lang attribute (default "en")
	DisqusShortname string // empty disables the comment widget
}

func (s Site) lang() string {
	if s.Lang == "" {
		return "en"
	}
	return s.Lang
}
