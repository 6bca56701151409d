package commands

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type AccountConfig struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c AccountConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Username, validation.Required),
		validation.Field(&c.Password, validation.Required),
	)
}

type TodoistConfig struct {
	ApiToken string `json:"apiToken"`
}

type NotionConfig struct {
	ApiKey     string `json:"apiKey"`
	DatabaseId string `json:"databaseId"`
}

type ExportConfig struct {
	TaskList bool `json:"taskList"`
	Database bool `json:"database"`
}

type Config struct {
	Url        string        `json:"url"`
	Account    AccountConfig `json:"account"`
	Todoist    TodoistConfig `json:"todoist"`
	Notion     NotionConfig  `json:"notion"`
	ExportTo   ExportConfig  `json:"exportTo"`
	RunlogPath string        `json:"runlogPath"`
	Debug      bool          `json:"debug"`
}

func (c Config) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Url, validation.Required),
	)
	if err != nil {
		return err
	}
	err = c.Account.Validate()
	if err != nil {
		return err
	}

	if c.ExportTo.TaskList && c.Todoist.ApiToken == "" {
		return errors.New("task list export is enabled but todoist.apiToken is empty")
	}
	if c.ExportTo.Database && (c.Notion.ApiKey == "" || c.Notion.DatabaseId == "") {
		return errors.New("database export is enabled but notion.apiKey or notion.databaseId is empty")
	}
	return nil
}
