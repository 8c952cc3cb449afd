package model

import "strings"

// SearchCriteria - фильтры поиска счётчиков в Maxit, объединяются через AND на стороне партнёра.
type SearchCriteria struct {
	Number      string `json:"numero,omitempty"`
	ClientName  string `json:"client_nom,omitempty"`
	ClientPhone string `json:"client_telephone,omitempty"`
	Active      *bool  `json:"actif,omitempty"`
}

// Clean убирает пробелы по краям строковых фильтров.
func (c SearchCriteria) Clean() SearchCriteria {
	c.Number = strings.TrimSpace(c.Number)
	c.ClientName = strings.TrimSpace(c.ClientName)
	c.ClientPhone = strings.TrimSpace(c.ClientPhone)
	return c
}

func (c SearchCriteria) IsEmpty() bool {
	c = c.Clean()
	return c.Number == "" && c.ClientName == "" && c.ClientPhone == "" && c.Active == nil
}

// Payload - тело запроса поиска для API Maxit, только непустые фильтры.
func (c SearchCriteria) Payload() map[string]any {
	c = c.Clean()
	p := make(map[string]any, 4)
	if c.Number != "" {
		p["numero"] = c.Number
	}
	if c.ClientName != "" {
		p["client_nom"] = c.ClientName
	}
	if c.ClientPhone != "" {
		p["client_telephone"] = c.ClientPhone
	}
	if c.Active != nil {
		p["actif"] = *c.Active
	}
	return p
}
