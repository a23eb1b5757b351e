package models

type PageData struct {
	Page        string
	Title       string
	CurrentUser *User
	Flashes     []Flash
}

func (p PageData) IsAuthenticated() bool {
	return p.CurrentUser != nil
}

type AuthPageData struct {
	PageData
	FormType string
	Values   map[string]string
	Errors   map[string]string
}

type DashboardPageData struct {
	PageData
	User *User
}
