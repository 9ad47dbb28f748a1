package journal

import "time"

// WorkoutType is a training modality.
type WorkoutType string

const (
	WorkoutTypeGym            WorkoutType = "gym"
	WorkoutTypeBouldering     WorkoutType = "bouldering"
	WorkoutTypeCircuits       WorkoutType = "circuits"
	WorkoutTypeLeadRock       WorkoutType = "lead_rock"
	WorkoutTypeLeadArtificial WorkoutType = "lead_artificial"
	WorkoutTypeMentalPractice WorkoutType = "mental_practice"
	WorkoutTypeFingerboarding WorkoutType = "fingerboarding"
)

// WorkoutTypes lists all modalities in display order.
var WorkoutTypes = []WorkoutType{
	WorkoutTypeGym,
	WorkoutTypeBouldering,
	WorkoutTypeCircuits,
	WorkoutTypeLeadRock,
	WorkoutTypeLeadArtificial,
	WorkoutTypeMentalPractice,
	WorkoutTypeFingerboarding,
}

func (wt WorkoutType) String() string {
	return string(wt)
}

func (wt WorkoutType) IsValid() bool {
	for _, t := range WorkoutTypes {
		if t == wt {
			return true
		}
	}
	return false
}

// IsClimbing reports whether falls can be taken in this modality.
func (wt WorkoutType) IsClimbing() bool {
	switch wt {
	case WorkoutTypeBouldering,
		WorkoutTypeCircuits,
		WorkoutTypeLeadRock,
		WorkoutTypeLeadArtificial:
		return true
	default:
		return false
	}
}

// IsMentalPractice reports whether the workout counts as a mental training session.
func (wt WorkoutType) IsMentalPractice() bool {
	return wt == WorkoutTypeMentalPractice
}

// TrainingVolume is an ordinal label, TR1 being the lightest and TR5 the hardest.
type TrainingVolume string

const (
	TR1 TrainingVolume = "TR1"
	TR2 TrainingVolume = "TR2"
	TR3 TrainingVolume = "TR3"
	TR4 TrainingVolume = "TR4"
	TR5 TrainingVolume = "TR5"
)

var TrainingVolumes = []TrainingVolume{TR1, TR2, TR3, TR4, TR5}

// ClimbSection is a sub-segment of a lead climbing workout.
type ClimbSection struct {
	FocusState  string `json:"focusState"`
	TookFall    *bool  `json:"tookFall,omitempty"`
	ComfortZone string `json:"comfortZone"`
	Notes       string `json:"notes"`
}

type MentalState struct {
	BeforeClimbing *int           `json:"beforeClimbing,omitempty"`
	ClimbSections  []ClimbSection `json:"climbSections"`
	TookFalls      *bool          `json:"tookFalls,omitempty"`
}

type TagRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Workout struct {
	ID             int             `json:"id"`
	Type           WorkoutType     `json:"type"`
	StartTime      time.Time       `json:"startTime"`
	TrainingVolume *TrainingVolume `json:"trainingVolume,omitempty"`
	FocusLevel     *int            `json:"focusLevel,omitempty"`
	MentalState    *MentalState    `json:"mentalState,omitempty"`
	Tags           []TagRef        `json:"tags"`
}

// Falls counts every recorded fall in the workout: the workout level flag
// and each climb section flag are counted independently.
func (w Workout) Falls() int {
	if w.MentalState == nil {
		return 0
	}
	falls := 0
	if w.MentalState.TookFalls != nil && *w.MentalState.TookFalls {
		falls++
	}
	for _, section := range w.MentalState.ClimbSections {
		if section.TookFall != nil && *section.TookFall {
			falls++
		}
	}
	return falls
}

type Tag struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// FingerboardTest is a single max hang / strength test session.
type FingerboardTest struct {
	ID   int       `json:"id"`
	Date time.Time `json:"date"`
}
