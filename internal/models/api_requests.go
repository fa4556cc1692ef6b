package models

// PredictRequest asks for a pick between two fighters.
type PredictRequest struct {
	RedID           string `json:"red_id" validate:"required"`
	BlueID          string `json:"blue_id" validate:"required,nefield=RedID"`
	ScheduledRounds int    `json:"scheduled_rounds" validate:"omitempty,oneof=3 5"`
	TitleFight      bool   `json:"title_fight"`
	RedWeightClass  string `json:"red_weight_class"`
	BlueWeightClass string `json:"blue_weight_class"`
	RedNoticeDays   int    `json:"red_notice_days" validate:"omitempty,min=0"`
	BlueNoticeDays  int    `json:"blue_notice_days" validate:"omitempty,min=0"`
	Venue           string `json:"venue"`
	HomeFighterID   string `json:"home_fighter_id"`
}

// BacktestRequest runs the backtester over bouts after the cutoff.
type BacktestRequest struct {
	Cutoff string `json:"cutoff" validate:"required,datetime=2006-01-02"`
	Limit  int    `json:"limit" validate:"omitempty,min=1,max=5000"`
}

// IngestBoutsRequest is a batch of normalized bout records from the
// scraper collaborator.
type IngestBoutsRequest struct {
	Bouts []Bout `json:"bouts" validate:"required,min=1,dive"`
}
