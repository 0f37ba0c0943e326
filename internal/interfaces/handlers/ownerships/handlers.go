package ownerships

import (
	"strconv"

	ownsvc "ledger-admin/internal/application/ownership"
	"ledger-admin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *ownsvc.Service
}

// POST /api/v1/fobo-account-ownerships
// { fobo_account, contact, role | is_backup_owner, start_date, end_date?, ownership_comment? }
func (h *Handlers) Create(c *fiber.Ctx) error {
	body, err := decodeBody(c)
	if err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	accountID, err := body.requiredInt("fobo_account")
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	}
	in, err := body.ownerInput()
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	}
	role, err := body.role()
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	}

	o, err := h.Service.Create(c.UserContext(), ownsvc.CreateInput{
		AccountID: accountID,
		ContactID: in.ContactID,
		Role:      role,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Comment:   in.Comment,
	})
	if err != nil {
		return err
	}
	return response.SuccessCreated(c, "Ownership created successfully", o, nil)
}

// POST /api/v1/fobo-account-ownerships/add-temporary-owner
// { fobo_account_ownership, contact, start_date, end_date?, ownership_comment? }
func (h *Handlers) AddTemporaryOwner(c *fiber.Ctx) error {
	body, err := decodeBody(c)
	if err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	refID, err := uuid.Parse(asString(body["fobo_account_ownership"]))
	if err != nil {
		return response.Error(c, "Invalid fobo_account_ownership", fiber.StatusBadRequest, nil)
	}
	in, err := body.ownerInput()
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	}

	o, err := h.Service.AddTemporaryOwner(c.UserContext(), refID, in)
	if err != nil {
		return err
	}
	return response.SuccessCreated(c, "Temporary owner added successfully", o, nil)
}

// PATCH /api/v1/fobo-account-ownerships/:id/update-temporary-owner
// Only keys present in the body change; end_date and ownership_comment accept null.
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ownership id", fiber.StatusBadRequest, nil)
	}
	body, err := decodeBody(c)
	if err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	patch, err := body.patch()
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	}
	if patch.IsEmpty() {
		return response.Error(c, "No valid changes provided", fiber.StatusBadRequest, nil)
	}

	o, err := h.Service.Update(c.UserContext(), id, patch)
	if err != nil {
		return err
	}
	return response.Success(c, "Ownership updated successfully", o, nil)
}

// GET /api/v1/fobo-account-ownerships/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ownership id", fiber.StatusBadRequest, nil)
	}
	o, status, err := h.Service.GetWithStatus(c.UserContext(), id)
	if err != nil {
		return err
	}
	return response.Success(c, "Ownership fetched successfully", ownsvc.WithStatus{Ownership: *o, Status: status}, nil)
}

// GET /api/v1/fobo-accounts/:id/ownerships
func (h *Handlers) ListByAccount(c *fiber.Ctx) error {
	accountID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return response.Error(c, "Invalid fobo account id", fiber.StatusBadRequest, nil)
	}
	list, err := h.Service.ListByAccount(c.UserContext(), accountID)
	if err != nil {
		return err
	}
	return response.Success(c, "Ownerships fetched successfully", list, nil)
}

func decodeBody(c *fiber.Ctx) (requestBody, error) {
	var body requestBody
	if err := c.BodyParser(&body); err != nil {
		return nil, err
	}
	if body == nil {
		body = requestBody{}
	}
	return body, nil
}
