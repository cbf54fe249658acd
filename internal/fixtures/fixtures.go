// Package fixtures holds sample values for the CLI and for tests: a small zoo
// hierarchy built from embedded structs plus a pet with a meal.
package fixtures

import (
	"sort"
)

// MoveType says how an animal gets around.
type MoveType int

const (
	MoveWalk MoveType = iota
	MoveSwim
	MoveCrawl
)

func (m MoveType) String() string {
	switch m {
	case MoveSwim:
		return "SWIM"
	case MoveCrawl:
		return "CRAWL"
	default:
		return "WALK"
	}
}

// Animal is the base of the zoo hierarchy.
type Animal struct {
	legs int
	move MoveType
	// Kingdom is shared by every animal and never rendered.
	Kingdom string `structfmt:"static"`
}

// NewAnimal returns an Animal with the given leg count.
func NewAnimal(legs int, move MoveType) Animal {
	return Animal{legs: legs, move: move, Kingdom: "Animalia"}
}

// Shark is a wild animal looked after by an organization.
type Shark struct {
	Animal
	organizationName string
}

// NewShark returns a Shark.
func NewShark(organizationName string) *Shark {
	return &Shark{Animal: NewAnimal(0, MoveSwim), organizationName: organizationName}
}

// Snake is both a pet and a wild animal.
type Snake struct {
	Animal
	organizationName string
}

// NewSnake returns a Snake.
func NewSnake(organizationName string) *Snake {
	return &Snake{Animal: NewAnimal(0, MoveCrawl), organizationName: organizationName}
}

// Meal is what a pet eats.
type Meal struct {
	name     string
	calories int
	servings int
}

// NewMeal returns a Meal.
func NewMeal(name string, calories, servings int) Meal {
	return Meal{name: name, calories: calories, servings: servings}
}

// Pet is an animal with an owner, a diet and secrets.
type Pet struct {
	Animal
	name     string
	age      int
	weight   float64
	meal     Meal
	vaccines []string
	owner    *string
	password string `structfmt:"skip"`
	_        struct{}
}

// NewPet returns the Pet used by the examples.
func NewPet() *Pet {
	return &Pet{
		Animal:   NewAnimal(4, MoveWalk),
		name:     "Rex",
		age:      3,
		weight:   12.5,
		meal:     NewMeal("Kibble", 350, 2),
		vaccines: []string{"rabies", "parvo"},
		password: "hunter2",
	}
}

// Account carries exported fields, one of which holds a secret.
type Account struct {
	ID       int
	Login    string
	Password string
	Roles    []string
}

var catalogue = map[string]func() any{
	"shark":   func() any { return NewShark("Ocean Trust") },
	"snake":   func() any { return NewSnake("Reptile House") },
	"pet":     func() any { return NewPet() },
	"meal":    func() any { return NewMeal("Kibble", 350, 2) },
	"account": func() any { return Account{ID: 7, Login: "ada", Password: "s3cret", Roles: []string{"admin", "ops"}} },
	"empty":   func() any { return struct{}{} },
	"nil":     func() any { return (*Shark)(nil) },
	"numbers": func() any { return []int{1, 2, 3} },
}

// Names lists the available fixtures in name order.
func Names() []string {
	names := make([]string, 0, len(catalogue))
	for name := range catalogue {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns a fresh copy of the named fixture.
func Get(name string) (any, bool) {
	build, ok := catalogue[name]
	if !ok {
		return nil, false
	}
	return build(), true
}
