// courses.go — handlers for the /api/v1/courses routes.
//
// Courses are the static setup data the scoring engine runs against: each tee
// set carries the rating/slope/par triple for the handicap formula and the
// per-hole pars and stroke indexes for allocation and Stableford scoring.
// Course data is validated at write time with the same rules the engine
// enforces at read time, so broken scorecards are rejected before they can
// poison a leaderboard.
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/mulliganhq/clubhouse/internal/models"
	"github.com/mulliganhq/clubhouse/internal/scoring"
)

// HoleResponse / TeeResponse / CourseResponse mirror the nested course →
// tees → holes shape clients need to render a scorecard.
type HoleResponse struct {
	HoleNumber  int  `json:"hole_number"`
	Par         int  `json:"par"`
	StrokeIndex int  `json:"stroke_index"`
	Yardage     *int `json:"yardage"`
}

type TeeResponse struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Gender       string         `json:"gender"`
	Yardage      *int           `json:"yardage"`
	CourseRating float64        `json:"course_rating"`
	SlopeRating  int            `json:"slope_rating"`
	Par          int            `json:"par"`
	Holes        []HoleResponse `json:"holes"`
}

type CourseResponse struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	City      string        `json:"city"`
	State     string        `json:"state"`
	HoleCount int           `json:"hole_count"`
	Tees      []TeeResponse `json:"tees"`
}

// CreateCourseRequest is the JSON body for POST /api/v1/courses: a course
// with at least one fully described tee set.
type CreateCourseRequest struct {
	Name      string `json:"name"`
	City      string `json:"city"`
	State     string `json:"state"`
	HoleCount int    `json:"hole_count"` // defaults to 18
	Tees      []struct {
		Name         string  `json:"name"`
		Gender       string  `json:"gender"` // "mens", "womens", or "unisex"; defaults to unisex
		Yardage      *int    `json:"yardage"`
		CourseRating float64 `json:"course_rating"`
		SlopeRating  int     `json:"slope_rating"`
		Par          int     `json:"par"`
		Holes        []struct {
			HoleNumber  int  `json:"hole_number"`
			Par         int  `json:"par"`
			StrokeIndex int  `json:"stroke_index"`
			Yardage     *int `json:"yardage"`
		} `json:"holes"`
	} `json:"tees"`
}

// GetCourses returns a handler for GET /api/v1/courses — the full course
// catalogue with tees and holes preloaded, ordered for stable scorecards.
func GetCourses(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var courses []models.Course
		err := db.
			Preload("Tees.Holes", func(tx *gorm.DB) *gorm.DB { return tx.Order("hole_number") }).
			Preload("Tees").
			Find(&courses).Error
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch courses",
			})
		}

		response := make([]CourseResponse, 0, len(courses))
		for _, course := range courses {
			response = append(response, courseResponse(course))
		}
		return c.JSON(response)
	}
}

// CreateCourse returns a handler for POST /api/v1/courses.
// Requires "admin" or "organizer" role (enforced by RequireRole on the route).
// Each tee's scorecard is validated with the scoring engine's own rules
// before anything is written.
func CreateCourse(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req CreateCourseRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
		if req.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "name is required",
			})
		}
		if len(req.Tees) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "at least one tee set is required",
			})
		}
		holeCount := req.HoleCount
		if holeCount == 0 {
			holeCount = 18
		}

		for _, tee := range req.Tees {
			if tee.Name == "" {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "tee name is required",
				})
			}
			if tee.SlopeRating <= 0 {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "slope_rating must be positive",
				})
			}
			if len(tee.Holes) != holeCount {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "each tee must describe every hole of the course",
				})
			}

			// Run the tee's scorecard through the engine's allocation with a
			// zero handicap — it validates hole count, unique hole numbers,
			// and the stroke-index permutation, which is exactly the
			// integrity contract the leaderboard relies on later.
			holes := make([]scoring.HoleInfo, 0, len(tee.Holes))
			for _, h := range tee.Holes {
				if h.Par < 3 || h.Par > 5 {
					return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
						"error": "hole par must be 3, 4, or 5",
					})
				}
				holes = append(holes, scoring.HoleInfo{
					Number:      h.HoleNumber,
					Par:         h.Par,
					StrokeIndex: h.StrokeIndex,
				})
			}
			if _, err := scoring.DistributeStrokes(0, holes); err != nil {
				if errors.Is(err, scoring.ErrDataIntegrity) || errors.Is(err, scoring.ErrInvalidInput) {
					return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
						"error": err.Error(),
					})
				}
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to validate course data",
				})
			}
		}

		// Build the whole nested record and insert it in one transaction —
		// GORM creates the tees and holes along with the course.
		course := models.Course{
			Name:      req.Name,
			City:      req.City,
			State:     req.State,
			HoleCount: holeCount,
		}
		for _, tee := range req.Tees {
			m := models.Tee{
				Name:         tee.Name,
				Gender:       teeGenderFrom(tee.Gender),
				Yardage:      tee.Yardage,
				CourseRating: tee.CourseRating,
				SlopeRating:  tee.SlopeRating,
				Par:          tee.Par,
			}
			for _, h := range tee.Holes {
				m.Holes = append(m.Holes, models.Hole{
					HoleNumber:  h.HoleNumber,
					Par:         h.Par,
					StrokeIndex: h.StrokeIndex,
					Yardage:     h.Yardage,
				})
			}
			course.Tees = append(course.Tees, m)
		}

		if err := db.Create(&course).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create course",
			})
		}

		return c.Status(fiber.StatusCreated).JSON(courseResponse(course))
	}
}

func teeGenderFrom(s string) models.TeeGender {
	switch s {
	case "mens":
		return models.TeeGenderMens
	case "womens":
		return models.TeeGenderWomens
	default:
		return models.TeeGenderUnisex
	}
}

func courseResponse(course models.Course) CourseResponse {
	resp := CourseResponse{
		ID:        course.ID.String(),
		Name:      course.Name,
		City:      course.City,
		State:     course.State,
		HoleCount: course.HoleCount,
	}
	for _, tee := range course.Tees {
		tr := TeeResponse{
			ID:           tee.ID.String(),
			Name:         tee.Name,
			Gender:       string(tee.Gender),
			Yardage:      tee.Yardage,
			CourseRating: tee.CourseRating,
			SlopeRating:  tee.SlopeRating,
			Par:          tee.Par,
		}
		for _, h := range tee.Holes {
			tr.Holes = append(tr.Holes, HoleResponse{
				HoleNumber:  h.HoleNumber,
				Par:         h.Par,
				StrokeIndex: h.StrokeIndex,
				Yardage:     h.Yardage,
			})
		}
		resp.Tees = append(resp.Tees, tr)
	}
	return resp
}
