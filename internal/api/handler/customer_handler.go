package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"customer-service/internal/api/handler/dto"
	"customer-service/internal/domain/auth"
	"customer-service/internal/domain/customer"
	"customer-service/internal/infrastructure/monitoring"
	"customer-service/internal/pkg/apperrors"
)

type CustomerHandler struct {
	service customer.CustomerService
	tokens  auth.TokenService
	logger  *slog.Logger
}

func NewCustomerHandler(s customer.CustomerService, tokens auth.TokenService, l *slog.Logger) *CustomerHandler {
	if s == nil {
		panic("customer service cannot be nil")
	}
	if tokens == nil {
		panic("token service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &CustomerHandler{
		service: s,
		tokens:  tokens,
		logger:  l.With("component", "CustomerHandler"),
	}
}

// RegisterCustomer handles POST /api/v1/customers
// @Summary Register a new customer
// @Description Creates a customer and returns a bearer token in the Authorization header. The body is empty.
// @Tags Customers
// @Accept json
// @Param request body dto.CustomerRegistrationRequest true "Customer registration request"
// @Success 200 "Customer registered, token in Authorization header"
// @Header 200 {string} Authorization "Signed token without the Bearer prefix"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 409 {object} dto.ErrorResponse "Email already taken"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers [post]
func (h *CustomerHandler) RegisterCustomer(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received register customer request")

	var req dto.CustomerRegistrationRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, r, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		h.logger.WarnContext(r.Context(), "Validation failed", slog.Any("error", err))
		respondError(w, r, err)
		return
	}

	created, err := h.service.AddCustomer(r.Context(), req.ToDomain())
	if err != nil {
		h.logger.Log(r.Context(), levelFor(err), "Service failed to register customer", slog.Any("error", err))
		respondError(w, r, err)
		return
	}
	monitoring.RecordCustomerRegistered()

	token, err := h.tokens.IssueWithScopes(created.Email, created.Roles...)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Customer registered, but token issue failed", slog.Any("error", err))
		respondError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Customer registered successfully", slog.Int64("customerID", created.ID))
	w.Header().Set(headerAuthorization, token)
	w.WriteHeader(http.StatusOK)
}

// ListCustomers handles GET /api/v1/customers
// @Summary List customers
// @Description Returns every stored customer.
// @Tags Customers
// @Produce json
// @Success 200 {array} customer.CustomerDTO "List of customers"
// @Failure 403 {object} dto.ErrorResponse "No authenticated identity"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers [get]
// @Security BearerAuth
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.GetAllCustomers(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list customers", slog.Any("error", err))
		respondError(w, r, err)
		return
	}

	h.logger.DebugContext(r.Context(), "Customers listed", slog.Int("count", len(customers)))
	respondJSON(w, http.StatusOK, customers)
}

// GetCustomer handles GET /api/v1/customers/{customerId}
// @Summary Retrieve a customer
// @Tags Customers
// @Produce json
// @Param customerId path int true "Customer ID"
// @Success 200 {object} customer.CustomerDTO "Customer details"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer ID format"
// @Failure 403 {object} dto.ErrorResponse "No authenticated identity"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerId} [get]
// @Security BearerAuth
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get customer ID from URL", slog.Any("error", err))
		respondError(w, r, err)
		return
	}

	found, err := h.service.GetCustomer(r.Context(), customerID)
	if err != nil {
		h.logger.Log(r.Context(), levelFor(err), "Service failed to get customer", slog.Any("error", err))
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, found)
}

// UpdateCustomer handles PUT /api/v1/customers/{customerId}
// @Summary Update a customer
// @Description Changes the supplied fields. Null or absent fields are left as they are. An update that changes nothing is rejected.
// @Tags Customers
// @Accept json
// @Param customerId path int true "Customer ID"
// @Param request body dto.CustomerUpdateRequest true "Fields to change"
// @Success 200 "Customer updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload or no data changes found"
// @Failure 403 {object} dto.ErrorResponse "No authenticated identity"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 409 {object} dto.ErrorResponse "Email already taken"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerId} [put]
// @Security BearerAuth
func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get customer ID from URL", slog.Any("error", err))
		respondError(w, r, err)
		return
	}

	var req dto.CustomerUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, r, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		h.logger.WarnContext(r.Context(), "Validation failed", slog.Any("error", err))
		respondError(w, r, err)
		return
	}

	if err := h.service.UpdateCustomer(r.Context(), customerID, req.ToDomain()); err != nil {
		h.logger.Log(r.Context(), levelFor(err), "Service failed to update customer", slog.Any("error", err))
		respondError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Customer updated successfully", slog.Int64("customerID", customerID))
	w.WriteHeader(http.StatusOK)
}

// DeleteCustomer handles DELETE /api/v1/customers/{customerId}
// @Summary Delete a customer
// @Tags Customers
// @Param customerId path int true "Customer ID"
// @Success 200 "Customer deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer ID format"
// @Failure 403 {object} dto.ErrorResponse "No authenticated identity"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerId} [delete]
// @Security BearerAuth
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get customer ID from URL", slog.Any("error", err))
		respondError(w, r, err)
		return
	}

	if err := h.service.DeleteCustomerByID(r.Context(), customerID); err != nil {
		h.logger.Log(r.Context(), levelFor(err), "Service failed to delete customer", slog.Any("error", err))
		respondError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Customer deleted successfully", slog.Int64("customerID", customerID))
	w.WriteHeader(http.StatusOK)
}

// levelFor logs client-caused failures at warn and everything else at error.
func levelFor(err error) slog.Level {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && statusForKind(appErr.Kind) < http.StatusInternalServerError {
		return slog.LevelWarn
	}
	return slog.LevelError
}
