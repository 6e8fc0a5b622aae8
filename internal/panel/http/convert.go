package http

import (
	"github.com/aussiebroadwan/panel/internal/panel/domain"
	"github.com/aussiebroadwan/panel/internal/panel/service"
	"github.com/aussiebroadwan/panel/internal/panel/store"
	"github.com/aussiebroadwan/panel/pkg/panelsdk"
)

func toClient(c *domain.Client) panelsdk.Client {
	return panelsdk.Client{
		ID:               c.ID().String(),
		Name:             c.Name(),
		Email:            c.Email().String(),
		Phone:            c.Phone().String(),
		PhoneDisplay:     c.Phone().FormattedDisplay(),
		Address:          c.Address(),
		TaxID:            c.TaxID(),
		Status:           c.Status().String(),
		StatusLabel:      c.Status().Label(),
		CanCreateInvoice: c.CanCreateInvoice(),
		CreatedAt:        c.CreatedAt(),
		UpdatedAt:        c.UpdatedAt(),
	}
}

func toClients(cs []*domain.Client) []panelsdk.Client {
	out := make([]panelsdk.Client, 0, len(cs))
	for _, c := range cs {
		out = append(out, toClient(c))
	}
	return out
}

func toClientList(p store.Page[*domain.Client]) panelsdk.ClientList {
	return panelsdk.ClientList{
		Clients: toClients(p.Data),
		Pagination: panelsdk.Pagination{
			Page:        p.Page,
			Limit:       p.Limit,
			Total:       p.Total,
			TotalPages:  p.TotalPages,
			HasNext:     p.HasNext(),
			HasPrevious: p.HasPrevious(),
		},
	}
}

func toStats(s service.ClientStats) panelsdk.ClientStats {
	return panelsdk.ClientStats{Total: s.Total, Active: s.Active, Inactive: s.Inactive, Deleted: s.Deleted}
}

func toUserInfo(u domain.User) panelsdk.UserInfo {
	return panelsdk.UserInfo{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Role:     u.Role,
		Active:   u.Active,
	}
}
