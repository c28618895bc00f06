package cars

import (
	"hash/fnv"
	"math/rand"
	"strings"
	"time"
)

// Source looks up a car by registration number.
type Source interface {
	Lookup(regNumber string) Car
}

// DummySource fabricates vehicle data instead of querying a registry.
// Results are derived deterministically from the registration number, so
// the same plate always resolves to the same car.
type DummySource struct {
	// now is a seam so tests get stable model years.
	now func() time.Time
}

func NewDummySource() *DummySource {
	return &DummySource{now: time.Now}
}

var (
	brands = []string{"Toyota", "Ford", "BMW", "Audi", "Honda", "Tesla", "Chevrolet", "Nissan"}
	models = []string{"Model A", "Model B", "Model C", "Model D", "Model E"}

	possibleIssues = []string{
		"Brake wear", "Oil leak", "Suspension noise", "Battery issue", "Transmission slip",
	}
)

func (s *DummySource) Lookup(regNumber string) Car {
	h := fnv.New64a()
	h.Write([]byte(strings.ToUpper(strings.TrimSpace(regNumber))))
	r := rand.New(rand.NewSource(int64(h.Sum64())))

	maxYear := s.now().Year()
	issues := make([]string, 0, len(possibleIssues))
	for _, issue := range possibleIssues {
		if r.Intn(5) == 0 {
			issues = append(issues, issue)
		}
	}

	return Car{
		RegNumber:       strings.ToUpper(strings.TrimSpace(regNumber)),
		Brand:           brands[r.Intn(len(brands))],
		Model:           models[r.Intn(len(models))],
		Year:            maxYear - 23 + r.Intn(23),
		Mileage:         r.Intn(200000),
		Owners:          1 + r.Intn(6),
		InsuranceClaims: r.Intn(5),
		KnownIssues:     issues,
	}
}
