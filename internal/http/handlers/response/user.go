package response

import (
	"regain/internal/core/domain/user"
	"time"
)

type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) FromDomainUser(domainUser user.User) {
	u.ID = int64(domainUser.ID)
	u.Email = string(domainUser.Email)
	u.CreatedAt = domainUser.CreatedAt
}
