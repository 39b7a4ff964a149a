package api

import (
	"context"
	"net/http"

	"github.com/QuantumCastro/Vitrum/internal/logging"
	"github.com/QuantumCastro/Vitrum/internal/server/models"
	"github.com/QuantumCastro/Vitrum/internal/server/services"
	"github.com/gin-gonic/gin"
)

type UserService interface {
	Register(ctx context.Context, email, password string, displayName *string) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
}

type VaultService interface {
	ListVaults(ctx context.Context, userID string) ([]*models.VaultWithNotes, error)
	CreateVault(ctx context.Context, userID, name string, theme *string) (*models.VaultWithNotes, error)
	GetVault(ctx context.Context, userID, vaultID string) (*models.VaultWithNotes, error)
	UpdateVault(ctx context.Context, userID, vaultID string, name, theme *string) (*models.VaultWithNotes, error)
}

type NoteService interface {
	ListNotes(ctx context.Context, userID, vaultID string) ([]*models.Note, error)
	CreateNote(ctx context.Context, userID, vaultID string, in services.NoteFields) (*models.Note, error)
	UpdateNote(ctx context.Context, userID, vaultID, noteID string, in services.NoteFields) (*models.Note, error)
	DeleteNote(ctx context.Context, userID, vaultID, noteID string) error
}

type Handler struct {
	users  UserService
	vaults VaultService
	notes  NoteService
	logger logging.Logger
}

func NewHandler(us UserService, vs VaultService, ns NoteService, l logging.Logger) *Handler {
	return &Handler{users: us, vaults: vs, notes: ns, logger: l}
}

// Register handles POST /auth/register.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidBody(c, err)
		return
	}

	res, err := h.users.Register(c.Request.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, toTokenResponse(res))
}

// Login handles POST /auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidBody(c, err)
		return
	}

	res, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toTokenResponse(res))
}

// Me handles GET /auth/me.
func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, toUserRead(currentUser(c)))
}

func (h *Handler) ListVaults(c *gin.Context) {
	vaults, err := h.vaults.ListVaults(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toVaultList(vaults))
}

func (h *Handler) CreateVault(c *gin.Context) {
	var req VaultCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidBody(c, err)
		return
	}

	v, err := h.vaults.CreateVault(c.Request.Context(), currentUser(c).ID, *req.Name, req.Theme)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, toVaultWithNotes(v))
}

func (h *Handler) GetVault(c *gin.Context) {
	v, err := h.vaults.GetVault(c.Request.Context(), currentUser(c).ID, c.Param("vault_id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toVaultWithNotes(v))
}

func (h *Handler) UpdateVault(c *gin.Context) {
	var req VaultUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidBody(c, err)
		return
	}

	v, err := h.vaults.UpdateVault(c.Request.Context(), currentUser(c).ID, c.Param("vault_id"), req.Name, req.Theme)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toVaultWithNotes(v))
}

func (h *Handler) ListNotes(c *gin.Context) {
	notes, err := h.notes.ListNotes(c.Request.Context(), currentUser(c).ID, c.Param("vault_id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toNoteList(notes))
}

func (h *Handler) CreateNote(c *gin.Context) {
	var req NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidBody(c, err)
		return
	}

	n, err := h.notes.CreateNote(c.Request.Context(), currentUser(c).ID, c.Param("vault_id"), req.fields())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, toNoteRead(n))
}

func (h *Handler) UpdateNote(c *gin.Context) {
	var req NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidBody(c, err)
		return
	}

	n, err := h.notes.UpdateNote(c.Request.Context(), currentUser(c).ID, c.Param("vault_id"), c.Param("note_id"), req.fields())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toNoteRead(n))
}

func (h *Handler) DeleteNote(c *gin.Context) {
	if err := h.notes.DeleteNote(c.Request.Context(), currentUser(c).ID, c.Param("vault_id"), c.Param("note_id")); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
