package api

import (
	"time"

	membershipdomain "github.com/splitroom/backend/internal/membership/domain"
	"github.com/splitroom/backend/internal/money"
	roomdomain "github.com/splitroom/backend/internal/room/domain"
	statsdomain "github.com/splitroom/backend/internal/stats/domain"
	transferdomain "github.com/splitroom/backend/internal/transfer/domain"
	userdomain "github.com/splitroom/backend/internal/user/domain"
)

type loginRequest struct {
	OpenID   string `json:"open_id" validate:"required,max=128"`
	Username string `json:"username" validate:"required,min=1,max=64"`
}

type loginResponse struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

type userDTO struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserDTO(u userdomain.User) userDTO {
	return userDTO{
		ID:        string(u.ID),
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}

type createRoomRequest struct {
	Name string `json:"name" validate:"max=64"`
}

type roomDTO struct {
	Code      string     `json:"code"`
	Name      string     `json:"name,omitempty"`
	OwnerID   string     `json:"owner_id"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
}

func toRoomDTO(r roomdomain.Room) roomDTO {
	return roomDTO{
		Code:      r.Code,
		Name:      r.Name,
		OwnerID:   r.OwnerID,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
		ClosedAt:  r.ClosedAt,
	}
}

type roomDetailResponse struct {
	Room    roomDTO     `json:"room"`
	Members []memberDTO `json:"members"`
}

type memberDTO struct {
	UserID   string     `json:"user_id"`
	Username string     `json:"username"`
	JoinedAt time.Time  `json:"joined_at"`
	LeftAt   *time.Time `json:"left_at,omitempty"`
}

func toMemberDTO(m membershipdomain.Membership) memberDTO {
	return memberDTO{
		UserID:   m.UserID,
		Username: m.Username,
		JoinedAt: m.JoinedAt,
		LeftAt:   m.LeftAt,
	}
}

func toMemberDTOs(members []membershipdomain.Membership) []memberDTO {
	dtos := make([]memberDTO, 0, len(members))
	for _, m := range members {
		dtos = append(dtos, toMemberDTO(m))
	}
	return dtos
}

type recordTransferRequest struct {
	// FromUserID is optional; when present it must match the caller.
	FromUserID string `json:"from_user_id" validate:"omitempty,max=64"`
	ToUserID   string `json:"to_user_id" validate:"required,max=64"`
	Amount     string `json:"amount" validate:"required,max=16"`
	Note       string `json:"note" validate:"max=255"`
}

type transferDTO struct {
	ID         int64     `json:"id"`
	FromUserID string    `json:"from_user_id"`
	ToUserID   string    `json:"to_user_id"`
	Amount     string    `json:"amount"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func toTransferDTO(t transferdomain.Transfer) transferDTO {
	return transferDTO{
		ID:         t.ID,
		FromUserID: t.FromUserID,
		ToUserID:   t.ToUserID,
		Amount:     t.Amount.String(),
		Note:       t.Note,
		CreatedAt:  t.CreatedAt,
	}
}

type transferListResponse struct {
	Transfers []transferDTO `json:"transfers"`
	Limit     int           `json:"limit"`
	Offset    int           `json:"offset"`
}

type balanceDTO struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Net      string `json:"net"`
}

func toBalanceDTOs(balances []transferdomain.Balance) []balanceDTO {
	dtos := make([]balanceDTO, 0, len(balances))
	for _, b := range balances {
		dtos = append(dtos, balanceDTO{
			UserID:   b.UserID,
			Username: b.Username,
			Net:      b.Net.String(),
		})
	}
	return dtos
}

type summaryResponse struct {
	Balances      []balanceDTO `json:"balances"`
	TransferCount int64        `json:"transfer_count"`
	TotalVolume   string       `json:"total_volume"`
}

type overviewResponse struct {
	TotalUsers         int64  `json:"total_users"`
	TotalRooms         int64  `json:"total_rooms"`
	ActiveRooms        int64  `json:"active_rooms"`
	TotalTransfers     int64  `json:"total_transfers"`
	TotalVolume        string `json:"total_volume"`
	RoomsToday         int64  `json:"rooms_today"`
	RoomsYesterday     int64  `json:"rooms_yesterday"`
	TransfersToday     int64  `json:"transfers_today"`
	TransfersYesterday int64  `json:"transfers_yesterday"`
}

func formatMinor(n int64) string {
	return money.Amount(n).String()
}

func toOverviewResponse(o statsdomain.Overview) overviewResponse {
	return overviewResponse{
		TotalUsers:         o.TotalUsers,
		TotalRooms:         o.TotalRooms,
		ActiveRooms:        o.ActiveRooms,
		TotalTransfers:     o.TotalTransfers,
		TotalVolume:        formatMinor(o.TotalVolumeMinor),
		RoomsToday:         o.RoomsToday,
		RoomsYesterday:     o.RoomsYesterday,
		TransfersToday:     o.TransfersToday,
		TransfersYesterday: o.TransfersYesterday,
	}
}
