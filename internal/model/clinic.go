package model

type Clinic struct {
	Base
	Name   string `db:"name" json:"name"`
	Status string `db:"status" json:"status"`
}
