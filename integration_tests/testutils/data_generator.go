package testutils

import (
	"strings"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"

	contactdb "github.com/sh4ner/streamerpulse/app/modules/contact/infrastructure/repositories"
	contentdb "github.com/sh4ner/streamerpulse/app/modules/content/infrastructure/repositories"
	giveawaydb "github.com/sh4ner/streamerpulse/app/modules/giveaway/infrastructure/repositories"
)

// DataGenerator builds realistic rows from a seeded faker.
type DataGenerator struct {
	faker *gofakeit.Faker
}

// NewTestDataGenerator returns a generator; a zero seed picks a random one.
func NewTestDataGenerator(seed uint64) *DataGenerator {
	return &DataGenerator{faker: gofakeit.New(seed)}
}

func (g *DataGenerator) GiveawayEntry() *giveawaydb.Entry {
	return &giveawaydb.Entry{
		Email:         strings.ToLower(g.faker.Email()),
		BCUsername:    g.faker.Username(),
		BCUserID:      g.faker.Numerify("#########"),
		DepositAmount: decimal.NewFromInt(20),
	}
}

func (g *DataGenerator) Contact() *contactdb.Contact {
	return &contactdb.Contact{
		FirstName: g.faker.FirstName(),
		LastName:  g.faker.LastName(),
		Email:     strings.ToLower(g.faker.Email()),
		Phone:     g.faker.Phone(),
		Message:   g.faker.Sentence(12),
	}
}

func (g *DataGenerator) Review(reviewType string) *contentdb.Review {
	return &contentdb.Review{
		Type:        reviewType,
		Title:       g.faker.AppName(),
		Description: g.faker.Paragraph(1, 3, 10, " "),
		Image:       g.faker.URL(),
		Rating:      float64(g.faker.Number(1, 5)),
	}
}

func (g *DataGenerator) Clip(kind string) *contentdb.Clip {
	return &contentdb.Clip{
		Kind:          kind,
		Title:         g.faker.Sentence(4),
		Description:   g.faker.Sentence(10),
		Image:         g.faker.URL(),
		ImagePublicID: "streamerpulse/" + g.faker.UUID(),
		VideoURL:      g.faker.URL(),
	}
}
