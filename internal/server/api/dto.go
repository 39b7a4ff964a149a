package api

import (
	"time"

	"github.com/QuantumCastro/Vitrum/internal/common"
	"github.com/QuantumCastro/Vitrum/internal/server/models"
	"github.com/QuantumCastro/Vitrum/internal/server/services"
)

type RegisterRequest struct {
	Email       string  `json:"email" binding:"required,email"`
	Password    string  `json:"password" binding:"required,min=8"`
	DisplayName *string `json:"display_name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type VaultCreateRequest struct {
	Name  *string `json:"name" binding:"required"`
	Theme *string `json:"theme"`
}

type VaultUpdateRequest struct {
	Name  *string `json:"name"`
	Theme *string `json:"theme"`
}

// NoteRequest serves both create and update; absent fields stay nil.
type NoteRequest struct {
	Title   *string   `json:"title"`
	Content *string   `json:"content"`
	Links   *[]string `json:"links"`
}

func (r NoteRequest) fields() services.NoteFields {
	return services.NoteFields{Title: r.Title, Content: r.Content, Links: r.Links}
}

type UserRead struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName *string   `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type TokenResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	User        UserRead `json:"user"`
}

type NoteRead struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Links     []string  `json:"links"`
	VaultID   string    `json:"vault_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type VaultWithNotes struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Theme     string     `json:"theme"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Notes     []NoteRead `json:"notes"`
}

type HealthStatus struct {
	Status      string `json:"status"`
	App         string `json:"app,omitempty"`
	Environment string `json:"environment,omitempty"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}

func toUserRead(u *models.User) UserRead {
	return UserRead{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func toTokenResponse(r *services.AuthResult) TokenResponse {
	return TokenResponse{
		AccessToken: r.AccessToken,
		TokenType:   common.TokenType,
		User:        toUserRead(r.User),
	}
}

func toNoteRead(n *models.Note) NoteRead {
	links := n.Links
	if links == nil {
		links = []string{}
	}
	return NoteRead{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		Links:     links,
		VaultID:   n.VaultID,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func toNoteList(notes []*models.Note) []NoteRead {
	out := make([]NoteRead, 0, len(notes))
	for _, n := range notes {
		out = append(out, toNoteRead(n))
	}
	return out
}

func toVaultWithNotes(v *models.VaultWithNotes) VaultWithNotes {
	return VaultWithNotes{
		ID:        v.Vault.ID,
		Name:      v.Vault.Name,
		Theme:     v.Vault.Theme,
		CreatedAt: v.Vault.CreatedAt,
		UpdatedAt: v.Vault.UpdatedAt,
		Notes:     toNoteList(v.Notes),
	}
}

func toVaultList(vaults []*models.VaultWithNotes) []VaultWithNotes {
	out := make([]VaultWithNotes, 0, len(vaults))
	for _, v := range vaults {
		out = append(out, toVaultWithNotes(v))
	}
	return out
}
