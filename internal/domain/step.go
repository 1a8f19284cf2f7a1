package domain

// Step is one stage of the linear booking wizard.
type Step int

const (
	StepSelectBus Step = iota + 1
	StepChooseSeats
	StepPassengerDetails
	StepPayment
	StepConfirmation
)

var stepTitles = map[Step]string{
	StepSelectBus:        "Select Bus",
	StepChooseSeats:      "Choose Seats",
	StepPassengerDetails: "Passenger Details",
	StepPayment:          "Payment",
	StepConfirmation:     "Confirmation",
}

func (s Step) String() string {
	if title, ok := stepTitles[s]; ok {
		return title
	}
	return "Unknown"
}

// Valid reports whether s is a known wizard stage.
func (s Step) Valid() bool {
	return s >= StepSelectBus && s <= StepConfirmation
}

// Terminal reports whether no transition leaves s.
func (s Step) Terminal() bool {
	return s == StepConfirmation
}
