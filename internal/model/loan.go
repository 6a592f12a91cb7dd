package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	LoanStatusPending     = "pending"
	LoanStatusUnderReview = "under_review"
	LoanStatusApproved    = "approved"
	LoanStatusRejected    = "rejected"
)

// LoanStatuses lists every status a loan application can be in
var LoanStatuses = []string{LoanStatusPending, LoanStatusUnderReview, LoanStatusApproved, LoanStatusRejected}

// IsValidLoanStatus reports whether status is one of the four loan statuses.
func IsValidLoanStatus(status string) bool {
	for _, s := range LoanStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// LoanApplication is a single loan request submitted by a user
type LoanApplication struct {
	ID                 uuid.UUID `json:"id"`
	UserID             uuid.UUID `json:"userId"`
	FullName           string    `json:"fullName"`
	LoanAmount         float64   `json:"loanAmount"`
	LoanTenure         int       `json:"loanTenure"` // In months
	EmploymentStatus   string    `json:"employmentStatus"`
	ReasonForLoan      string    `json:"reasonForLoan"`
	EmploymentAddress  string    `json:"employmentAddress"`
	HasReadInformation bool      `json:"hasReadInformation"`
	AgreeToDisclosure  bool      `json:"agreeToDisclosure"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// SubmitLoanRequest is used for submitting a new loan application
type SubmitLoanRequest struct {
	FullName           string  `json:"fullName" binding:"required"`
	LoanAmount         float64 `json:"loanAmount" binding:"required,gt=0"`
	LoanTenure         int     `json:"loanTenure" binding:"required,gt=0"`
	EmploymentStatus   string  `json:"employmentStatus" binding:"required"`
	ReasonForLoan      string  `json:"reasonForLoan" binding:"required"`
	EmploymentAddress  string  `json:"employmentAddress" binding:"required"`
	HasReadInformation bool    `json:"hasReadInformation"`
	AgreeToDisclosure  bool    `json:"agreeToDisclosure"`
}

// ReviewLoanRequest is the body of PATCH /review-loan
type ReviewLoanRequest struct {
	LoanID string `json:"loanId" binding:"required"`
	Status string `json:"status" binding:"required"`
}

// LoanStats summarizes loans for the review dashboards
type LoanStats struct {
	Total          int64            `json:"total"`
	ByStatus       map[string]int64 `json:"byStatus"`
	TotalRequested float64          `json:"totalRequested"`
	TotalApproved  float64          `json:"totalApproved"`
}
