package models

// JobPosting represents one listing returned by the job source
type JobPosting struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	Snippet  string `json:"snippet"`
	Salary   string `json:"salary"`
	Link     string `json:"link"`
}

// Key returns the identity used for deduplication
func (j JobPosting) Key() string {
	return j.Title + "|" + j.Company
}

// Profile represents the user's personal data sent with each request
type Profile struct {
	Name       string       `json:"name"`
	Email      string       `json:"email"`
	Phone      string       `json:"phone"`
	Summary    string       `json:"summary"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
	Skills     []string     `json:"skills"`
}

// Experience represents work experience
type Experience struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"` // empty for current positions
	Description string `json:"description"`
}

// Education represents a degree or course of study
type Education struct {
	School    string `json:"school"`
	Degree    string `json:"degree"`
	Field     string `json:"field"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// CVResult is the outcome of one successfully generated job
type CVResult struct {
	JobPosting
	CV         string `json:"cv"`
	CVFilename string `json:"cv_filename"` // rendered document
	CVTxt      string `json:"cv_txt"`      // text artifact, always present
	Rendered   bool   `json:"rendered"`
	Language   string `json:"language"`
}
