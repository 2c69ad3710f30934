package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	DepartmentRepository   *DepartmentRepository
	TicketRepository       *TicketRepository
	AnnouncementRepository *AnnouncementRepository
	AppointmentRepository  *AppointmentRepository
	ForumRepository        *ForumRepository
	ChatRepository         *ChatRepository
	LostFoundRepository    *LostFoundRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		DepartmentRepository:   NewDepartmentRepository(db),
		TicketRepository:       NewTicketRepository(db),
		AnnouncementRepository: NewAnnouncementRepository(db),
		AppointmentRepository:  NewAppointmentRepository(db),
		ForumRepository:        NewForumRepository(db),
		ChatRepository:         NewChatRepository(db),
		LostFoundRepository:    NewLostFoundRepository(db),
	}
}
