package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"waitlist/internal/profile"
	"waitlist/internal/response"
)

// ProfileHandler serves customer and business profile documents.
type ProfileHandler struct {
	profiles *profile.Service
	logger   *logrus.Logger
}

func NewProfileHandler(profiles *profile.Service, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, logger: logger}
}

// GetCustomerHandler returns a customer profile
// @Summary		Get customer
// @Tags			customer
// @Produce		json
// @Param			uid	query		string	true	"Customer uid"
// @Success		200	{object}	models.Customer
// @Failure		400	{object}	response.ErrorResponse	"Missing uid (MALFORMED_REQUEST)"
// @Failure		404	{object}	response.ErrorResponse	"Customer not found (CUSTOMER_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Storage failure (STORE_ERROR)"
// @Router			/api/customers [get]
func (h *ProfileHandler) GetCustomerHandler(c *gin.Context) {
	customer, err := h.profiles.GetCustomer(c.Request.Context(), c.Query("uid"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// PostCustomerHandler stores a customer profile
// @Summary		Save customer
// @Description	Overwrites the customer profile, e.g. after adding a favorite or a recent business
// @Tags			customer
// @Accept			json
// @Param			body	body	response.CustomerRequest	true	"Customer"
// @Success		201
// @Failure		400	{object}	response.ErrorResponse	"Missing customer (MALFORMED_REQUEST)"
// @Failure		500	{object}	response.ErrorResponse	"Storage failure (STORE_ERROR)"
// @Router			/api/customers [post]
func (h *ProfileHandler) PostCustomerHandler(c *gin.Context) {
	var req response.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := h.profiles.PutCustomer(c.Request.Context(), *req.Customer); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusCreated)
}

// NewCustomerHandler creates a blank customer profile
// @Summary		Create customer
// @Description	pushToken NO_ID stores the customer without a push token
// @Tags			customer
// @Produce		json
// @Param			uid			query		string	true	"Customer uid"
// @Param			pushToken	query		string	true	"Expo push token or NO_ID"
// @Success		201			{object}	models.Customer
// @Failure		400			{object}	response.ErrorResponse	"Missing uid or pushToken (MALFORMED_REQUEST)"
// @Failure		500			{object}	response.ErrorResponse	"Storage failure (STORE_ERROR)"
// @Router			/api/customers/new [post]
func (h *ProfileHandler) NewCustomerHandler(c *gin.Context) {
	customer, err := h.profiles.NewCustomer(c.Request.Context(), c.Query("uid"), c.Query("pushToken"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

// GetBusinessHandler returns a business profile
// @Summary		Get business
// @Tags			business
// @Produce		json
// @Param			uid	query		string	true	"Business uid"
// @Success		200	{object}	models.Business
// @Failure		400	{object}	response.ErrorResponse	"Missing uid (MALFORMED_REQUEST)"
// @Failure		404	{object}	response.ErrorResponse	"Business not found (BUSINESS_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Storage failure (STORE_ERROR)"
// @Router			/api/businesses [get]
func (h *ProfileHandler) GetBusinessHandler(c *gin.Context) {
	business, err := h.profiles.GetBusiness(c.Request.Context(), c.Query("uid"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, business)
}

// PostBusinessHandler stores a business profile
// @Summary		Save business
// @Description	Overwrites the business profile on registration or profile edits
// @Tags			business
// @Accept			json
// @Param			body	body	response.BusinessRequest	true	"Business"
// @Success		201
// @Failure		400	{object}	response.ErrorResponse	"Missing business (MALFORMED_REQUEST)"
// @Failure		500	{object}	response.ErrorResponse	"Storage failure (STORE_ERROR)"
// @Router			/api/businesses [post]
func (h *ProfileHandler) PostBusinessHandler(c *gin.Context) {
	var req response.BusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := h.profiles.PutBusiness(c.Request.Context(), *req.Business); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusCreated)
}
