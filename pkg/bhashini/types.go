package bhashini

import (
	"fmt"
	"strings"
	"time"
)

// Config holds the credentials and endpoints for the Bhashini ULCA APIs.
type Config struct {
	PipelineConfigEndpoint string
	InferenceEndpoint      string
	PipelineID             string
	UserID                 string
	APIKey                 string
	Timeout                time.Duration
}

// Validate checks the required fields and fills in defaults.
func (c *Config) Validate() error {
	if c.PipelineID == "" {
		return fmt.Errorf("bhashini pipeline ID is required")
	}
	if c.UserID == "" {
		return fmt.Errorf("bhashini user ID is required")
	}
	if c.APIKey == "" {
		return fmt.Errorf("bhashini API key is required")
	}
	if c.PipelineConfigEndpoint == "" {
		c.PipelineConfigEndpoint = DefaultPipelineConfigEndpoint
	}
	if c.InferenceEndpoint == "" {
		c.InferenceEndpoint = DefaultInferenceEndpoint
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return nil
}

// UnsupportedLanguageError is returned when the resolved pipeline has no
// service for the requested task/language pair.
type UnsupportedLanguageError struct {
	Task      string
	Language  string
	Available []string
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("bhashini: %s not supported for language %q (available: %s)",
		e.Task, e.Language, strings.Join(e.Available, ", "))
}

// serviceInfo is one resolved service for a task/language pair.
type serviceInfo struct {
	ServiceID        string
	SourceScriptCode string
	TargetScriptCode string
}

// pipelineData is the parsed pipeline config, keyed by source language
// (and target language for translation).
type pipelineData struct {
	InferenceAPIKey string
	ASR             map[string][]serviceInfo
	TTS             map[string][]serviceInfo
	Translation     map[string]map[string][]serviceInfo
}

// Wire types for the ULCA pipeline config API.

type pipelineConfigRequest struct {
	PipelineTasks         []pipelineTaskName    `json:"pipelineTasks"`
	PipelineRequestConfig pipelineRequestConfig `json:"pipelineRequestConfig"`
}

type pipelineTaskName struct {
	TaskType string `json:"taskType"`
}

type pipelineRequestConfig struct {
	PipelineID string `json:"pipelineId"`
}

type pipelineConfigResponse struct {
	PipelineResponseConfig []pipelineResponseConfig `json:"pipelineResponseConfig"`
	PipelineInferenceAPI   struct {
		InferenceAPIKey struct {
			Value string `json:"value"`
		} `json:"inferenceApiKey"`
	} `json:"pipelineInferenceAPIEndPoint"`
}

type pipelineResponseConfig struct {
	TaskType string           `json:"taskType"`
	Config   []languageConfig `json:"config"`
}

type languageConfig struct {
	ServiceID string `json:"serviceId"`
	Language  struct {
		SourceLanguage   string `json:"sourceLanguage"`
		SourceScriptCode string `json:"sourceScriptCode"`
		TargetLanguage   string `json:"targetLanguage"`
		TargetScriptCode string `json:"targetScriptCode"`
	} `json:"language"`
}

// Wire types for the inference API.

type inferenceRequest struct {
	PipelineTasks []inferenceTask `json:"pipelineTasks"`
	InputData     inputData       `json:"inputData"`
}

type inferenceTask struct {
	TaskType string     `json:"taskType"`
	Config   taskConfig `json:"config"`
}

type taskConfig struct {
	Language     taskLanguage `json:"language"`
	ServiceID    string       `json:"serviceId"`
	AudioFormat  string       `json:"audioFormat,omitempty"`
	SamplingRate int          `json:"samplingRate,omitempty"`
	Gender       string       `json:"gender,omitempty"`
}

type taskLanguage struct {
	SourceLanguage string `json:"sourceLanguage"`
	TargetLanguage string `json:"targetLanguage,omitempty"`
}

type inputData struct {
	Input []textInput  `json:"input,omitempty"`
	Audio []audioInput `json:"audio,omitempty"`
}

type textInput struct {
	Source string `json:"source"`
}

type audioInput struct {
	AudioContent string `json:"audioContent"`
}

type inferenceResponse struct {
	PipelineResponse []struct {
		Output []struct {
			Source string `json:"source"`
			Target string `json:"target"`
		} `json:"output"`
		Audio []struct {
			AudioContent string `json:"audioContent"`
		} `json:"audio"`
	} `json:"pipelineResponse"`
}
