// Package testdata generates plausible camp records for development
// seeding and demos. Nothing here runs in production request paths.
package testdata

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/dustward/campbase/pkg/models"
)

var playaNamePool = []string{
	"Stardust", "Glitterbomb", "Moonbeam", "Dusty", "Prism", "Voltage",
	"Mirage", "Tinsel", "Nebula", "Sundog", "Fable", "Wanderlust",
	"Sequin", "Halcyon", "Ember", "Zephyr",
}

var pronounPool = []string{"she/her", "he/him", "they/them", "she/they", "he/they"}

var campRolePool = []string{
	"kitchen lead", "build crew", "strike crew", "greeter",
	"art liaison", "power wrangler", "shade architect", "",
}

var scalePool = []string{"1", "2", "3", "4", "5"}

// GeneratorConfig tunes how rich the generated records are.
type GeneratorConfig struct {
	EmailChance  float64 // probability a recruit has an email
	PhoneChance  float64
	SocialChance float64
}

// DefaultConfig mirrors what real intake data looks like: most people
// leave an email, about half leave a phone number.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		EmailChance:  0.85,
		PhoneChance:  0.45,
		SocialChance: 0.6,
	}
}

// Generator produces randomized domain records.
type Generator struct {
	cfg  GeneratorConfig
	rand *rand.Rand
}

// New creates a generator seeded for reproducible output.
func New(cfg GeneratorConfig, seed int64) *Generator {
	gofakeit.Seed(seed)
	return &Generator{cfg: cfg, rand: rand.New(rand.NewSource(seed))}
}

func (g *Generator) chance(p float64) bool {
	return g.rand.Float64() < p
}

func (g *Generator) pick(pool []string) string {
	return pool[g.rand.Intn(len(pool))]
}

// PlayaName returns a camp-style nickname.
func (g *Generator) PlayaName() string {
	return g.pick(playaNamePool)
}

// Intake builds one raw application. Scale answers are 1-5 strings as
// the public form submits them.
func (g *Generator) Intake() models.RecruitIntake {
	intake := models.RecruitIntake{
		NamePronouns:      fmt.Sprintf("%s %s / %s", gofakeit.FirstName(), gofakeit.LastName(), g.pick(pronounPool)),
		ApproachStrangers: ptr(g.pick(scalePool)),
		Theatrical:        ptr(g.pick(scalePool)),
		StraightFace:      ptr(g.pick(scalePool)),
		BeingApproached:   ptr(g.pick(scalePool)),
		IdealBalance:      ptr(g.pick(scalePool)),
		Enthusiasm:        ptr(gofakeit.Sentence(12)),
		CampScenario:      ptr(gofakeit.Sentence(18)),
		CampingSetup:      ptr(gofakeit.Sentence(8)),
	}
	if g.chance(g.cfg.EmailChance) {
		intake.Email = ptr(strings.ToLower(gofakeit.Email()))
	}
	if g.chance(g.cfg.SocialChance) {
		intake.SocialHandle = ptr("@" + gofakeit.Username())
	}
	if g.chance(0.5) {
		intake.BurnExperience = ptr(gofakeit.Sentence(10))
	}
	if g.chance(0.3) {
		intake.SkillsResources = ptr(gofakeit.Sentence(9))
	}
	return intake
}

// Recruit builds a pipeline record at a random stage. caseRef, when not
// empty, attributes the recruit to that campaign.
func (g *Generator) Recruit(caseRef string) models.Recruit {
	r := models.Recruit{
		Name:       gofakeit.FirstName() + " " + gofakeit.LastName(),
		Stage:      g.pick(models.Stages),
		Confidence: 10 * (1 + g.rand.Intn(10)),
	}
	if g.chance(g.cfg.EmailChance) {
		r.Email = ptr(strings.ToLower(gofakeit.Email()))
	}
	if g.chance(g.cfg.PhoneChance) {
		r.Phone = ptr(gofakeit.Phone())
	}
	if g.chance(g.cfg.SocialChance) {
		r.SocialHandle = ptr("@" + gofakeit.Username())
	}
	if caseRef != "" {
		r.ReferredByID = ptr(caseRef)
	}
	return r
}

// Campaign builds a campaign with a slug-style case reference.
func (g *Generator) Campaign() models.Campaign {
	channels := []string{
		models.ChannelFacebook, models.ChannelInstagram, models.ChannelReddit,
		models.ChannelFriend, models.ChannelTwitter, models.ChannelEmail,
		models.ChannelFlyer,
	}
	channel := g.pick(channels)
	word := strings.ToLower(gofakeit.Word())
	title := strings.ToUpper(word[:1]) + word[1:]
	return models.Campaign{
		Name:    fmt.Sprintf("%s %s push", title, channel),
		CaseRef: fmt.Sprintf("%s-%s-%d", channel[:2], word, g.rand.Intn(90)+10),
		Channel: channel,
		Active:  true,
	}
}

// UserWithMember builds a registered account and its profile.
func (g *Generator) UserWithMember() (models.User, models.Member) {
	user := models.User{
		Email: strings.ToLower(gofakeit.Email()),
		Name:  gofakeit.FirstName() + " " + gofakeit.LastName(),
	}
	member := models.Member{
		PlayaName: g.PlayaName(),
		Pronouns:  g.pick(pronounPool),
		HomeBase:  gofakeit.City(),
		CampRole:  g.pick(campRolePool),
		HasTicket: g.chance(0.6),
		Status:    "active",
	}
	if member.HasTicket {
		member.TicketSource = ptr(g.pick([]string{"main sale", "steward sale", "friend", "OMG sale"}))
	}
	return user, member
}

func ptr(s string) *string { return &s }
