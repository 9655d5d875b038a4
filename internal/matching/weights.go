package matching

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	// Course recommendation: 60% tag match, 30% instructor skills, 10% popularity.
	DefaultCourseTagWeight             = 0.6
	DefaultCourseInstructorSkillWeight = 0.3
	DefaultCoursePopularityWeight      = 0.1
	// Enrollments at which a course counts as maximally popular.
	DefaultPopularityCap = 100.0

	// Instructor recommendation: 80% skill match, 20% authored-course volume.
	DefaultInstructorSkillWeight  = 0.8
	DefaultInstructorVolumeWeight = 0.2
	// Authored courses at which an instructor counts as maximally prolific.
	DefaultVolumeCap = 10.0

	// Peer matching refinement, per interest term found in the free text.
	DefaultGoalTermBonus = 0.5
	DefaultBioTermBonus  = 0.25

	DefaultLimit        = 10
	DefaultSimilarLimit = 6
)

type Weights struct {
	CourseTag             float64 `yaml:"course_tag" validate:"gte=0,lte=1"`
	CourseInstructorSkill float64 `yaml:"course_instructor_skill" validate:"gte=0,lte=1"`
	CoursePopularity      float64 `yaml:"course_popularity" validate:"gte=0,lte=1"`
	PopularityCap         float64 `yaml:"popularity_cap" validate:"gt=0"`

	InstructorSkill  float64 `yaml:"instructor_skill" validate:"gte=0,lte=1"`
	InstructorVolume float64 `yaml:"instructor_volume" validate:"gte=0,lte=1"`
	VolumeCap        float64 `yaml:"volume_cap" validate:"gt=0"`

	GoalTermBonus float64 `yaml:"goal_term_bonus" validate:"gte=0,lte=1"`
	BioTermBonus  float64 `yaml:"bio_term_bonus" validate:"gte=0,lte=1"`
}

func DefaultWeights() Weights {
	return Weights{
		CourseTag:             DefaultCourseTagWeight,
		CourseInstructorSkill: DefaultCourseInstructorSkillWeight,
		CoursePopularity:      DefaultCoursePopularityWeight,
		PopularityCap:         DefaultPopularityCap,
		InstructorSkill:       DefaultInstructorSkillWeight,
		InstructorVolume:      DefaultInstructorVolumeWeight,
		VolumeCap:             DefaultVolumeCap,
		GoalTermBonus:         DefaultGoalTermBonus,
		BioTermBonus:          DefaultBioTermBonus,
	}
}

var validate = validator.New()

// Validate checks ranges and that each composite sums to at most 1, which
// keeps course and instructor scores inside [0,1].
func (w Weights) Validate() error {
	if err := validate.Struct(w); err != nil {
		return fmt.Errorf("invalid weights: %w", err)
	}
	const eps = 1e-9
	if sum := w.CourseTag + w.CourseInstructorSkill + w.CoursePopularity; sum > 1+eps {
		return fmt.Errorf("invalid weights: course weights sum to %.3f (max 1)", sum)
	}
	if sum := w.InstructorSkill + w.InstructorVolume; sum > 1+eps {
		return fmt.Errorf("invalid weights: instructor weights sum to %.3f (max 1)", sum)
	}
	return nil
}

// LoadWeights overlays the YAML file at path onto the defaults. Keys missing
// from the file keep their default value.
func LoadWeights(path string) (Weights, error) {
	w := DefaultWeights()
	b, err := os.ReadFile(path)
	if err != nil {
		return w, fmt.Errorf("read weights file: %w", err)
	}
	if err := yaml.Unmarshal(b, &w); err != nil {
		return DefaultWeights(), fmt.Errorf("parse weights file: %w", err)
	}
	if err := w.Validate(); err != nil {
		return DefaultWeights(), err
	}
	return w, nil
}
