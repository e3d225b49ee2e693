package domain

import "time"

type Agent struct {
	ID                 string    `json:"id"`
	IsPropertyDealer   string    `json:"isPropertyDealer"`
	AgentName          string    `json:"agentName"`
	FirmName           string    `json:"firmName,omitempty"`
	OperatingCity      string    `json:"operatingCity"`
	OperatingAreaChips []string  `json:"operatingAreaChips"`
	OperatingSince     string    `json:"operatingSince,omitempty"`
	TeamMembers        string    `json:"teamMembers,omitempty"`
	DealsIn            []string  `json:"dealsIn"`
	DealsInOther       string    `json:"dealsInOther,omitempty"`
	AboutAgent         string    `json:"aboutAgent,omitempty"`
	Owner              string    `json:"user"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}
