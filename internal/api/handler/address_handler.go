package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"pharmacy-customers/internal/api/handler/dto"
	"pharmacy-customers/internal/domain/address"
	"pharmacy-customers/internal/domain/customer"
	"pharmacy-customers/internal/pkg/apperrors"
)

type AddressHandler struct {
	service address.AddressService
	logger  *slog.Logger
}

func NewAddressHandler(s address.AddressService, l *slog.Logger) *AddressHandler {
	if s == nil {
		panic("address service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &AddressHandler{
		service: s,
		logger:  l.With("component", "AddressHandler"),
	}
}

// AddAddress handles POST /customers/addresses
// @Summary Append an address to a customer's collection
// @Description Looks the customer up by email, enforces the capacity and nickname invariants, enriches the entry from the pincode reference table and persists the whole collection in one write.
// @Tags Addresses
// @Accept json
// @Produce json
// @Param request body dto.AddAddressRequest true "Address payload"
// @Success 200 {object} dto.CustomerResponse "Updated customer"
// @Failure 400 {object} dto.ErrorResponse "Unknown email, capacity exceeded, duplicate nickname or invalid pincode"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/addresses [post]
// @Security BearerAuth
func (h *AddressHandler) AddAddress(w http.ResponseWriter, r *http.Request) {
	var req dto.AddAddressRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	cust, err := h.service.AddAddress(r.Context(), req.Email, req.Address.ToInput(), req.UpdatedBy)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			h.logger.WarnContext(r.Context(), "Add address: unknown email")
			respondJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: dto.ErrorDetail{Message: msgInvalidEmail}})
			return
		}
		h.logger.WarnContext(r.Context(), "Service failed to add address", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Address added successfully", slog.String("customerID", cust.CustomerID.String()))
	respondJSON(w, http.StatusOK, dto.NewCustomerResponse(cust))
}

// DeleteAddress handles DELETE /customers/addresses
// @Summary Remove addresses by nickname from a customer's collection
// @Description Removes every entry whose nickname matches exactly. When nothing matches, no write is performed.
// @Tags Addresses
// @Accept json
// @Produce json
// @Param request body dto.DeleteAddressRequest true "Deletion payload"
// @Success 200 {object} dto.CustomerResponse "Updated customer"
// @Failure 400 {object} dto.ErrorResponse "Unknown email or nickname not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/addresses [delete]
// @Security BearerAuth
func (h *AddressHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	var req dto.DeleteAddressRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	cust, err := h.service.RemoveAddress(r.Context(), req.Email, req.NickName, req.UpdatedBy)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			h.logger.WarnContext(r.Context(), "Delete address: unknown email")
			respondJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: dto.ErrorDetail{Message: msgInvalidEmail}})
			return
		}
		h.logger.WarnContext(r.Context(), "Service failed to delete address", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Address deleted successfully", slog.String("customerID", cust.CustomerID.String()))
	respondJSON(w, http.StatusOK, dto.NewCustomerResponse(cust))
}
