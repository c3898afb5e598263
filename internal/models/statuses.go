package models

type AccountStatus string
type ProfileVisibility string
type AvailabilityStatus string
type Gender string
type PlayingHand string
type MatchFormat string

const (
	AccountStatusActive    AccountStatus = "active"
	AccountStatusSuspended AccountStatus = "suspended"
	AccountStatusDeleted   AccountStatus = "deleted"

	VisibilityPublic  ProfileVisibility = "public"
	VisibilityPrivate ProfileVisibility = "private"

	AvailabilityAvailableNow AvailabilityStatus = "available_now"
	AvailabilityThisWeek     AvailabilityStatus = "this_week"
	AvailabilityUnavailable  AvailabilityStatus = "unavailable"

	GenderMale        Gender = "male"
	GenderFemale      Gender = "female"
	GenderOther       Gender = "other"
	GenderUnspecified Gender = "unspecified"

	HandRight PlayingHand = "right"
	HandLeft  PlayingHand = "left"

	FormatSingles MatchFormat = "singles"
	FormatDoubles MatchFormat = "doubles"
	// FormatBoth - сентинел "играю оба формата"; в поиске матчится с любым фильтром
	FormatBoth MatchFormat = "both"
)
