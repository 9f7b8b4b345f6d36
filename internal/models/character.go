package models

// Character is a record received from the catalog. Values are displayed as-is.
type Character struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Status  string `json:"status"`
	Species string `json:"species"`
	Gender  string `json:"gender"`
	Image   string `json:"image"`
}

// PageInfo is the paging block of a catalog response. Only Count is used.
type PageInfo struct {
	Count int    `json:"count"`
	Pages int    `json:"pages"`
	Next  string `json:"next"`
	Prev  string `json:"prev"`
}

// Page is one decoded catalog response
type Page struct {
	Info    PageInfo    `json:"info"`
	Results []Character `json:"results"`
}
