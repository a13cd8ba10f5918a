package domain

type Genre struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}
