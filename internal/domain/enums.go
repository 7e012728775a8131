package domain

// TrainingCategory classifies training content areas for per-category
// renewal requirements. The set is fixed by the certification body.
type TrainingCategory string

const (
	CategoryA TrainingCategory = "CATEGORY_A"
	CategoryB TrainingCategory = "CATEGORY_B"
	CategoryC TrainingCategory = "CATEGORY_C"
	CategoryD TrainingCategory = "CATEGORY_D"
	CategoryE TrainingCategory = "CATEGORY_E"
	CategoryF TrainingCategory = "CATEGORY_F"
)

func (c TrainingCategory) String() string { return string(c) }

func (c TrainingCategory) IsValid() bool {
	switch c {
	case CategoryA, CategoryB, CategoryC, CategoryD, CategoryE, CategoryF:
		return true
	}
	return false
}

// AllCategories lists every valid category in display order.
func AllCategories() []TrainingCategory {
	return []TrainingCategory{CategoryA, CategoryB, CategoryC, CategoryD, CategoryE, CategoryF}
}

// ReminderKind identifies which of a planned training's deadlines a
// reminder refers to.
type ReminderKind string

const (
	ReminderApplication ReminderKind = "APPLICATION"
	ReminderPayment     ReminderKind = "PAYMENT"
	ReminderTraining    ReminderKind = "TRAINING"
)

func (k ReminderKind) String() string { return string(k) }

func (k ReminderKind) IsValid() bool {
	switch k {
	case ReminderApplication, ReminderPayment, ReminderTraining:
		return true
	}
	return false
}

// AllReminderKinds lists the three deadline kinds in notification order.
func AllReminderKinds() []ReminderKind {
	return []ReminderKind{ReminderApplication, ReminderPayment, ReminderTraining}
}
