package dto

import (
	"strings"

	"suratku_backend/internals/sheets"
)

// CreateUserRequest: POST /api/users
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Username string `json:"username" validate:"required,min=3,max=100"`
	Password string `json:"password" validate:"required,min=4,max=72"`
	Role     string `json:"role" validate:"omitempty,oneof=Admin Guru Tendik"`
	Status   string `json:"status" validate:"omitempty,oneof=Active Inactive"`
	NIP      string `json:"nip" validate:"omitempty,max=30"`
	HP       string `json:"hp" validate:"omitempty,max=30"`
	Jabatan  string `json:"jabatan" validate:"omitempty,max=100"`
	Avatar   string `json:"avatar" validate:"omitempty,url"`
}

func (r *CreateUserRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Username = strings.TrimSpace(r.Username)
	r.Role = strings.TrimSpace(r.Role)
	r.Status = strings.TrimSpace(r.Status)
	r.NIP = strings.TrimSpace(r.NIP)
	r.HP = strings.TrimSpace(r.HP)
	r.Jabatan = strings.TrimSpace(r.Jabatan)
	r.Avatar = strings.TrimSpace(r.Avatar)
}

func (r *CreateUserRequest) ToRecord() sheets.Record {
	return sheets.Record{
		"name":     r.Name,
		"username": r.Username,
		"password": r.Password,
		"role":     r.Role,
		"status":   r.Status,
		"nip":      r.NIP,
		"hp":       r.HP,
		"jabatan":  r.Jabatan,
		"avatar":   r.Avatar,
	}
}

// UpdateUserRequest: partial; password kosong = tidak diganti
type UpdateUserRequest struct {
	ID       string  `json:"id" validate:"required"`
	Name     *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Username *string `json:"username,omitempty" validate:"omitempty,min=3,max=100"`
	Password *string `json:"password,omitempty" validate:"omitempty,max=72"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=Admin Guru Tendik"`
	Status   *string `json:"status,omitempty" validate:"omitempty,oneof=Active Inactive"`
	NIP      *string `json:"nip,omitempty" validate:"omitempty,max=30"`
	HP       *string `json:"hp,omitempty" validate:"omitempty,max=30"`
	Jabatan  *string `json:"jabatan,omitempty" validate:"omitempty,max=100"`
	Avatar   *string `json:"avatar,omitempty" validate:"omitempty,url"`
}

func (r *UpdateUserRequest) ToRecord() sheets.Record {
	rec := sheets.Record{}
	set := func(key string, v *string) {
		if v != nil {
			rec[key] = strings.TrimSpace(*v)
		}
	}
	set("name", r.Name)
	set("username", r.Username)
	set("role", r.Role)
	set("status", r.Status)
	set("nip", r.NIP)
	set("hp", r.HP)
	set("jabatan", r.Jabatan)
	set("avatar", r.Avatar)
	if r.Password != nil {
		rec["password"] = *r.Password
	}
	return rec
}

// ProfileRequest: POST /api/user/profile (id opsional, default actor)
type ProfileRequest struct {
	ID       string  `json:"id"`
	Name     *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Username *string `json:"username,omitempty" validate:"omitempty,min=3,max=100"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=4,max=72"`
	NIP      *string `json:"nip,omitempty" validate:"omitempty,max=30"`
	HP       *string `json:"hp,omitempty" validate:"omitempty,max=30"`
	Jabatan  *string `json:"jabatan,omitempty" validate:"omitempty,max=100"`
	Avatar   *string `json:"avatar,omitempty" validate:"omitempty,url"`
}

func (r *ProfileRequest) ToRecord() sheets.Record {
	u := UpdateUserRequest{
		ID: r.ID, Name: r.Name, Username: r.Username, Password: r.Password,
		NIP: r.NIP, HP: r.HP, Jabatan: r.Jabatan, Avatar: r.Avatar,
	}
	rec := u.ToRecord()
	if id := strings.TrimSpace(r.ID); id != "" {
		rec["id"] = id
	}
	return rec
}

// LoginRequest: POST /api/auth/login
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse: token hanya diisi kalau JWT_SECRET diset
type LoginResponse struct {
	User      any    `json:"user"`
	Token     string `json:"token,omitempty"`
	ExpiresIn int64  `json:"expires_in,omitempty"`
}
