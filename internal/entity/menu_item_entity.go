package entity

type MenuItem struct {
	Id          uint
	Name        string
	Category    string
	Description string
	Price       float64
	InStock     bool
}
