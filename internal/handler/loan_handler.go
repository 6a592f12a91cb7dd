package handler

import (
	"net/http"

	"creditsea/internal/middleware"
	"creditsea/internal/model"
	"creditsea/internal/policy"
	"creditsea/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// LoanHandler handles loan application requests
type LoanHandler struct {
	service service.LoanService
	log     logrus.FieldLogger
}

// NewLoanHandler creates a new LoanHandler
func NewLoanHandler(s service.LoanService, log logrus.FieldLogger) *LoanHandler {
	return &LoanHandler{service: s, log: log}
}

func (h *LoanHandler) Submit(c *gin.Context) {
	var req model.SubmitLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	loan, err := h.service.Submit(c.Request.Context(), middleware.GetIdentity(c), req)
	if err != nil {
		respondError(c, h.log, err, "submit loan application")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":       "Loan application submitted successfully",
		"applicationId": loan.ID,
		"status":        loan.Status,
		"loan":          loan,
	})
}

func (h *LoanHandler) ListByOwner(c *gin.Context) {
	ownerID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	loans, err := h.service.ListByOwner(c.Request.Context(), middleware.GetIdentity(c), ownerID)
	if err != nil {
		respondError(c, h.log, err, "fetch loan applications")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Loan applications fetched successfully", "loans": loans})
}

func (h *LoanHandler) ListAll(c *gin.Context) {
	loans, err := h.service.ListAll(c.Request.Context(), middleware.GetIdentity(c))
	if err != nil {
		respondError(c, h.log, err, "fetch loan applications")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Loan applications fetched successfully", "loans": loans})
}

func (h *LoanHandler) Review(c *gin.Context) {
	var req model.ReviewLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	loanID, err := uuid.Parse(req.LoanID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid loan ID format"})
		return
	}

	loan, err := h.service.Review(c.Request.Context(), middleware.GetIdentity(c), loanID, req.Status)
	if err != nil {
		respondError(c, h.log, err, "update loan status")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Loan status updated successfully", "loan": loan})
}

func (h *LoanHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context(), middleware.GetIdentity(c))
	if err != nil {
		respondError(c, h.log, err, "fetch loan statistics")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// RegisterLoanRoutes registers loan application routes
func (h *LoanHandler) RegisterLoanRoutes(rg *gin.RouterGroup) {
	rg.POST("/loan-application", middleware.Authorize(policy.SubmitLoan), h.Submit)
	rg.GET("/getAllLoans/:userId", middleware.AnyOf(policy.ViewOwnLoans, policy.ViewAllLoans), h.ListByOwner)
	rg.GET("/getAllLoans", middleware.Authorize(policy.ViewAllLoans), h.ListAll)
	rg.PATCH("/review-loan", middleware.Authorize(policy.ReviewLoan), h.Review)
	rg.GET("/loan-stats", middleware.Authorize(policy.ViewAllLoans), h.Stats)
}
