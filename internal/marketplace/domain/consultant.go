package domain

import (
	"slices"
	"time"
)

var MoneyTypes = []string{"minute", "hour", "project"}

func ValidMoneyType(s string) bool { return slices.Contains(MoneyTypes, s) }

type Consultant struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	Designation    string    `json:"designation"`
	Experience     int       `json:"experience"`
	Money          float64   `json:"money"`
	MoneyType      string    `json:"moneyType"`
	Expertise      string    `json:"expertise"`
	Certifications string    `json:"certifications"`
	Languages      []string  `json:"languages"`
	Image          string    `json:"image"`
	IDProof        string    `json:"idProof"`
	Address        string    `json:"address"`
	Location       string    `json:"location"`
	Owner          string    `json:"user"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
