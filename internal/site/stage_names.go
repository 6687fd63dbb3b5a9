package site

// StageName is the typed identifier of a build stage.
type StageName string

const (
	StagePrepare   StageName = "prepare"
	StageHome      StageName = "home"
	StageReference StageName = "reference"
	StageArticles  StageName = "articles"
	StageNews      StageName = "news"
	StageAssets    StageName = "assets"
	StageFinalize  StageName = "finalize"
)

// StageDef pairs a stage name with its implementation.
type StageDef struct {
	Name StageName
	Fn   Stage
}

// buildStages is the fixed stage order of a full site build.
func buildStages() []StageDef {
	return []StageDef{
		{StagePrepare, stagePrepare},
		{StageHome, stageHome},
		{StageReference, stageReference},
		{StageArticles, stageArticles},
		{StageNews, stageNews},
		{StageAssets, stageAssets},
		{StageFinalize, stageFinalize},
	}
}
