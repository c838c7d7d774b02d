package services

import (
	"time"

	"github.com/astrahealth/astra/internal/apperror"
	"github.com/astrahealth/astra/internal/models"
	"github.com/astrahealth/astra/internal/security"
)

var ErrCheckInUserNotFound = apperror.NotFound("user")

type CheckInRecordRepository interface {
	Create(checkIn *models.CheckIn) error
	ListByUserHash(userHash string) ([]models.CheckIn, error)
}

type CheckInUserRepository interface {
	FindByHash(userHash string) (models.User, bool, error)
	ApplyCheckInStreak(userID uint, dayStart time.Time, updates models.User) (int64, error)
	UpdateByID(userID uint, updates map[string]any) error
}

// CheckInInput carries the free-form wellbeing fields. The service never
// interprets them.
type CheckInInput struct {
	Mood                string
	HealthComment       string
	DoctorVisit         bool
	HealthProfileUpdate bool
	AnxietyLevel        *int
	AnxietyDetails      string
	PainLevel           *int
	PainDetails         string
	FatigueLevel        *int
	FatigueDetails      string
}

type CheckInStats struct {
	TotalCheckIns int      `json:"totalCheckIns"`
	CurrentStreak int      `json:"currentStreak"`
	LongestStreak int      `json:"longestStreak"`
	StreakHistory []string `json:"streakHistory"`
}

type CheckInResult struct {
	CheckIn models.CheckIn `json:"checkIn"`
	Stats   CheckInStats   `json:"stats"`
}

type CheckInService struct {
	checkIns CheckInRecordRepository
	users    CheckInUserRepository
	clock    func() time.Time
}

func NewCheckInService(checkIns CheckInRecordRepository, users CheckInUserRepository) *CheckInService {
	return &CheckInService{
		checkIns: checkIns,
		users:    users,
		clock:    time.Now,
	}
}

// CreateCheckIn persists the check-in record, then advances the owning
// user's streak. The two writes are not atomic: if the user lookup fails the
// already-written record is kept as an accepted orphan. The user write itself
// is conditional on the stored last check-in still preceding today, so two
// racing check-ins on the same day cannot both advance the streak.
func (service *CheckInService) CreateCheckIn(userHash string, input CheckInInput) (CheckInResult, error) {
	now := service.clock()

	checkinID, err := security.GenerateCheckInID(now)
	if err != nil {
		return CheckInResult{}, err
	}

	record := models.CheckIn{
		CheckinID:           checkinID,
		UserHash:            userHash,
		Timestamp:           now,
		Mood:                input.Mood,
		HealthComment:       input.HealthComment,
		DoctorVisit:         input.DoctorVisit,
		HealthProfileUpdate: input.HealthProfileUpdate,
		AnxietyLevel:        input.AnxietyLevel,
		AnxietyDetails:      input.AnxietyDetails,
		PainLevel:           input.PainLevel,
		PainDetails:         input.PainDetails,
		FatigueLevel:        input.FatigueLevel,
		FatigueDetails:      input.FatigueDetails,
	}
	if err := service.checkIns.Create(&record); err != nil {
		return CheckInResult{}, err
	}

	user, found, err := service.users.FindByHash(userHash)
	if err != nil {
		return CheckInResult{}, err
	}
	if !found {
		return CheckInResult{}, ErrCheckInUserNotFound
	}

	next, err := AdvanceStreak(StreakState{
		LastCheckIn:   user.LastCheckIn,
		CurrentStreak: user.CurrentStreak,
		LongestStreak: user.LongestStreak,
		StreakHistory: user.StreakHistory,
		CheckIns:      user.CheckIns,
		Points:        user.Points,
	}, now)
	if err != nil {
		return CheckInResult{}, err
	}

	rows, err := service.users.ApplyCheckInStreak(user.ID, utcDayStart(now), models.User{
		CheckIns:      next.CheckIns,
		Points:        next.Points,
		LastCheckIn:   next.LastCheckIn,
		CurrentStreak: next.CurrentStreak,
		LongestStreak: next.LongestStreak,
		StreakHistory: next.StreakHistory,
	})
	if err != nil {
		return CheckInResult{}, err
	}
	if rows == 0 {
		// A concurrent check-in claimed today between our read and write.
		return CheckInResult{}, ErrDuplicateCheckIn
	}

	return CheckInResult{
		CheckIn: record,
		Stats: CheckInStats{
			TotalCheckIns: next.CheckIns,
			CurrentStreak: next.CurrentStreak,
			LongestStreak: next.LongestStreak,
			StreakHistory: next.StreakHistory,
		},
	}, nil
}

func (service *CheckInService) ListCheckIns(userHash string) ([]models.CheckIn, error) {
	return service.checkIns.ListByUserHash(userHash)
}

// RollbackCheckIn undoes the counter side of a check-in for callers that hit
// a downstream failure after the record was written. It floors both counters
// at zero and deliberately leaves streak state and history alone; re-deriving
// a correct streak from a partial undo is not supported.
func (service *CheckInService) RollbackCheckIn(userHash string) error {
	user, found, err := service.users.FindByHash(userHash)
	if err != nil {
		return err
	}
	if !found {
		return ErrCheckInUserNotFound
	}

	checkIns := user.CheckIns - 1
	if checkIns < 0 {
		checkIns = 0
	}
	points := user.Points - 1
	if points < 0 {
		points = 0
	}

	return service.users.UpdateByID(user.ID, map[string]any{
		"check_ins": checkIns,
		"points":    points,
	})
}
