package dto

type GitHubImportQuery struct {
	Repo  string `form:"repo"`
	Since string `form:"since"`
}

type SlackImportQuery struct {
	Channel string `form:"channel"`
	Oldest  string `form:"oldest"`
	Limit   string `form:"limit"`
}

type GitLabImportQuery struct {
	Project string `form:"project"`
	Since   string `form:"since"`
}
