package db

import "gorm.io/gorm"

type Repositories struct {
	Users           *UserRepository
	CheckIns        *CheckInRepository
	MigrationCodes  *MigrationCodeRepository
	ResearchInvites *ResearchInviteRepository
	DataUnions      *DataUnionRepository
	Feedback        *FeedbackRepository
	Docs            *DocRepository
	HealthData      *HealthDataRepository
	Notifications   *NotificationRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:           NewUserRepository(database),
		CheckIns:        NewCheckInRepository(database),
		MigrationCodes:  NewMigrationCodeRepository(database),
		ResearchInvites: NewResearchInviteRepository(database),
		DataUnions:      NewDataUnionRepository(database),
		Feedback:        NewFeedbackRepository(database),
		Docs:            NewDocRepository(database),
		HealthData:      NewHealthDataRepository(database),
		Notifications:   NewNotificationRepository(database),
	}
}
