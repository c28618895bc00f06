package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/autocompare/autocompare/internal/cars"
)

func (a *App) search(ctx context.Context, args []string) {
	if !a.requireLogin() {
		return
	}

	regNumber := strings.Join(args, " ")
	if regNumber == "" {
		var err error
		regNumber, err = GetSimpleText(a.reader, "Registration number", a.out)
		if err != nil || regNumber == "" {
			return
		}
	}

	car := a.source.Lookup(regNumber)
	car.Evaluate(time.Now())
	a.printCar(&car)

	a.cars.Add(ctx, car)
	a.current.RecordSearch(ctx, a.users, car.RegNumber)
	a.log.Info(ctx, "car evaluated",
		"username", a.current.Username, "regNumber", car.RegNumber, "verdict", car.Recommendation)
}

func (a *App) saved() {
	if !a.requireLogin() {
		return
	}

	all := a.cars.All()
	if len(all) == 0 {
		fmt.Fprintln(a.out, "No cars evaluated yet. Try 'search <reg>'.")
		return
	}
	for _, car := range all {
		fmt.Fprintf(a.out, "%-10s %s %s (%d), %d km, verdict: %s\n",
			car.RegNumber, car.Brand, car.Model, car.Year, car.Mileage, car.Recommendation)
	}
}

func (a *App) history() {
	if !a.requireLogin() {
		return
	}

	if len(a.current.SearchHistory) == 0 {
		fmt.Fprintln(a.out, "Your search history is empty.")
		return
	}
	for i, term := range a.current.SearchHistory {
		fmt.Fprintf(a.out, "%2d. %s\n", i+1, term)
	}
}

func (a *App) clearHistory(ctx context.Context) {
	if !a.requireLogin() {
		return
	}
	a.current.ClearSearchHistory(ctx, a.users)
	fmt.Fprintln(a.out, "Search history cleared.")
}

func (a *App) ask(ctx context.Context, args []string) {
	if !a.requireLogin() {
		return
	}

	question := strings.Join(args, " ")
	if question == "" {
		var err error
		question, err = GetSimpleText(a.reader, "What would you like to know?", a.out)
		if err != nil || question == "" {
			return
		}
	}

	fmt.Fprintln(a.out, "Thinking...")
	res, err := a.advisor.Ask(ctx, question, a.cars.All())
	if err != nil {
		a.log.Error(ctx, "advisor request failed", "error", err)
		fmt.Fprintf(a.out, "The advisor is unavailable: %v\n", err)
		return
	}

	fmt.Fprintln(a.out, res.Answer)
	if res.Summary != "" {
		fmt.Fprintf(a.out, "\nIn short: %s\n", res.Summary)
	}
	if len(res.Sources) > 0 {
		fmt.Fprintf(a.out, "Sources: %s\n", strings.Join(res.Sources, ", "))
	}
}

func (a *App) printCar(car *cars.Car) {
	fmt.Fprintf(a.out, "\n%s %s (%d)\n", car.Brand, car.Model, car.Year)
	fmt.Fprintf(a.out, "  Registration:     %s\n", car.RegNumber)
	fmt.Fprintf(a.out, "  Mileage:          %d km\n", car.Mileage)
	fmt.Fprintf(a.out, "  Previous owners:  %d\n", car.Owners)
	fmt.Fprintf(a.out, "  Insurance claims: %d\n", car.InsuranceClaims)
	if len(car.KnownIssues) > 0 {
		fmt.Fprintf(a.out, "  Known issues:     %s\n", strings.Join(car.KnownIssues, ", "))
	} else {
		fmt.Fprintln(a.out, "  Known issues:     none")
	}
	fmt.Fprintf(a.out, "  %s\n\n", car.Recommendation.Summary())
}
