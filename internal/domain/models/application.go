package models

import "admin/internal/domain"

const (
	ApplicationPending  domain.Status = "pending"
	ApplicationApproved domain.Status = "approved"
	ApplicationRejected domain.Status = "rejected"
)

var ApplicationStatuses = []domain.Status{ApplicationPending, ApplicationApproved, ApplicationRejected}

var ApplicationStatusLabels = map[domain.Status]string{
	ApplicationPending:  "Na čekanju",
	ApplicationApproved: "Odobrena",
	ApplicationRejected: "Odbijena",
}

// ApplicationDecisions are the only targets an admin can move an application to.
var ApplicationDecisions = []domain.Status{ApplicationApproved, ApplicationRejected}

type ApplicationListItem struct {
	ID        domain.ID     `json:"id"`
	FullName  string        `json:"fullName"`
	Email     string        `json:"email"`
	Category  string        `json:"category"`
	Followers string        `json:"followers"`
	Status    domain.Status `json:"status"`
	CreatedAt string        `json:"createdAt"`
}

type ApplicationDetail struct {
	ApplicationListItem
	Phone       string  `json:"phone"`
	SocialMedia string  `json:"socialMedia"`
	Bio         string  `json:"bio"`
	Motivation  string  `json:"motivation"`
	SubmittedBy *string `json:"submittedBy"`
	ReviewedAt  *string `json:"reviewedAt"`
}
