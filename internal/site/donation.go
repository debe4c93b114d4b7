package site

import (
	"fmt"
	"sort"
)

// DefaultAmount is selected when the form opens and after each submit.
const DefaultAmount = 50

// Tier is a donation level and what it pays for.
type Tier struct {
	Amount  int
	Message string
}

// Tiers are the impact levels in ascending order.
var Tiers = []Tier{
	{25, "provides research resources and journal access for one student to begin their project."},
	{50, "covers research mentorship for one student through the entire publishing process."},
	{100, "funds full mentorship and peer-review journal publication fees for one student researcher."},
	{250, "supports a cohort of students through Vireka's Research Publishing Program from start to publication."},
	{500, "funds a student's full Biotech Innovation Program experience including lab access and patent filing support."},
	{1000, "sponsors an entire research program expansion into a new school district or country."},
}

// ImpactFor returns the highest tier not above amount, or the lowest tier
// when amount is below all of them.
func ImpactFor(amount int) Tier {
	i := sort.Search(len(Tiers), func(i int) bool { return Tiers[i].Amount > amount })
	if i == 0 {
		return Tiers[0]
	}
	return Tiers[i-1]
}

// ImpactNote is the sentence shown under the amount buttons.
func ImpactNote(amount int) string {
	return fmt.Sprintf("$%s — %s", Thousands(amount), ImpactFor(amount).Message)
}

type Frequency int

const (
	OneTime Frequency = iota
	Monthly
)

func (f Frequency) String() string {
	if f == Monthly {
		return "monthly"
	}
	return "one-time"
}

// DonationForm tracks the amount chosen with the preset buttons or the
// custom field. Selected is the index of the highlighted preset button, -1
// when none is.
type DonationForm struct {
	Amount    int
	Selected  int
	Custom    string
	Frequency Frequency
}

func NewDonationForm() *DonationForm {
	f := &DonationForm{}
	f.reset()
	return f
}

func (f *DonationForm) reset() {
	f.Amount = DefaultAmount
	f.Selected = tierIndex(DefaultAmount)
	f.Custom = ""
	f.Frequency = OneTime
}

func tierIndex(amount int) int {
	for i, t := range Tiers {
		if t.Amount == amount {
			return i
		}
	}
	return -1
}

// Select presses preset button i and clears the custom field.
func (f *DonationForm) Select(i int) error {
	if i < 0 || i >= len(Tiers) {
		return fmt.Errorf("button %d: %w", i, ErrInvalidAmount)
	}
	f.Selected = i
	f.Amount = Tiers[i].Amount
	f.Custom = ""
	return nil
}

// SetCustom records typed text. Any input deselects the buttons; the
// amount only changes when the text starts with a positive integer.
func (f *DonationForm) SetCustom(text string) error {
	f.Custom = text
	f.Selected = -1
	n, err := ParseLeadingInt(text)
	if err != nil {
		return err
	}
	if n <= 0 {
		return ErrInvalidAmount
	}
	f.Amount = n
	return nil
}

func (f *DonationForm) Note() string { return ImpactNote(f.Amount) }

// Confirmation is what a submitted donation reports back.
type Confirmation struct {
	Amount    int
	Frequency Frequency
	Note      string
}

// Submit confirms the current choice and resets the form.
func (f *DonationForm) Submit() Confirmation {
	c := Confirmation{Amount: f.Amount, Frequency: f.Frequency, Note: f.Note()}
	f.reset()
	return c
}
