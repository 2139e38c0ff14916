package bhashini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"sync"
)

type bhashiniImpl struct {
	config     Config
	httpClient *http.Client

	mu       sync.Mutex
	pipeline *pipelineData
}

func newClient(cfg Config) *bhashiniImpl {
	return &bhashiniImpl{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// RefreshPipeline fetches and parses the pipeline config, replacing any
// cached copy.
func (b *bhashiniImpl) RefreshPipeline(ctx context.Context) error {
	data, err := b.fetchPipelineConfig(ctx)
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.pipeline = data
	b.mu.Unlock()
	return nil
}

// Invalidate drops the cached pipeline config so the next call re-fetches it.
func (b *bhashiniImpl) Invalidate() {
	b.mu.Lock()
	b.pipeline = nil
	b.mu.Unlock()
}

func (b *bhashiniImpl) getPipeline(ctx context.Context) (*pipelineData, error) {
	b.mu.Lock()
	cached := b.pipeline
	b.mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	data, err := b.fetchPipelineConfig(ctx)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	b.pipeline = data
	b.mu.Unlock()
	return data, nil
}

func (b *bhashiniImpl) fetchPipelineConfig(ctx context.Context) (*pipelineData, error) {
	reqBody := pipelineConfigRequest{
		PipelineTasks: []pipelineTaskName{
			{TaskType: TaskASR},
			{TaskType: TaskTranslation},
			{TaskType: TaskTTS},
		},
		PipelineRequestConfig: pipelineRequestConfig{PipelineID: b.config.PipelineID},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.config.PipelineConfigEndpoint, bytes.NewBuffer(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("userID", b.config.UserID)
	httpReq.Header.Set("ulcaApiKey", b.config.APIKey)

	resp, err := b.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call bhashini config API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bhashini config API error: %d", resp.StatusCode)
	}

	var cfgResp pipelineConfigResponse
	if err := json.NewDecoder(resp.Body).Decode(&cfgResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return parsePipelineConfig(&cfgResp), nil
}

func parsePipelineConfig(resp *pipelineConfigResponse) *pipelineData {
	data := &pipelineData{
		InferenceAPIKey: resp.PipelineInferenceAPI.InferenceAPIKey.Value,
		ASR:             make(map[string][]serviceInfo),
		TTS:             make(map[string][]serviceInfo),
		Translation:     make(map[string]map[string][]serviceInfo),
	}

	for _, task := range resp.PipelineResponseConfig {
		for _, lc := range task.Config {
			src := lc.Language.SourceLanguage
			info := serviceInfo{
				ServiceID:        lc.ServiceID,
				SourceScriptCode: lc.Language.SourceScriptCode,
				TargetScriptCode: lc.Language.TargetScriptCode,
			}

			switch task.TaskType {
			case TaskASR:
				data.ASR[src] = append(data.ASR[src], info)
			case TaskTTS:
				data.TTS[src] = append(data.TTS[src], info)
			case TaskTranslation:
				tgt := lc.Language.TargetLanguage
				if data.Translation[src] == nil {
					data.Translation[src] = make(map[string][]serviceInfo)
				}
				data.Translation[src][tgt] = append(data.Translation[src][tgt], info)
			}
		}
	}

	return data
}

func (b *bhashiniImpl) Transcribe(ctx context.Context, audio []byte, sourceLanguage string) (string, error) {
	pipeline, err := b.getPipeline(ctx)
	if err != nil {
		return "", err
	}

	services, ok := pipeline.ASR[sourceLanguage]
	if !ok || len(services) == 0 {
		return "", &UnsupportedLanguageError{Task: TaskASR, Language: sourceLanguage, Available: languageKeys(pipeline.ASR)}
	}

	req := inferenceRequest{
		PipelineTasks: []inferenceTask{{
			TaskType: TaskASR,
			Config: taskConfig{
				Language:     taskLanguage{SourceLanguage: sourceLanguage},
				ServiceID:    services[0].ServiceID,
				AudioFormat:  DefaultAudioFormat,
				SamplingRate: DefaultASRSamplingRate,
			},
		}},
		InputData: inputData{
			Audio: []audioInput{{AudioContent: base64.StdEncoding.EncodeToString(audio)}},
		},
	}

	resp, err := b.infer(ctx, pipeline, req)
	if err != nil {
		return "", err
	}
	if len(resp.PipelineResponse) == 0 || len(resp.PipelineResponse[0].Output) == 0 {
		return "", fmt.Errorf("bhashini: empty ASR response")
	}
	return resp.PipelineResponse[0].Output[0].Source, nil
}

func (b *bhashiniImpl) Synthesize(ctx context.Context, text, sourceLanguage string) ([]byte, error) {
	pipeline, err := b.getPipeline(ctx)
	if err != nil {
		return nil, err
	}

	services, ok := pipeline.TTS[sourceLanguage]
	if !ok || len(services) == 0 {
		return nil, &UnsupportedLanguageError{Task: TaskTTS, Language: sourceLanguage, Available: languageKeys(pipeline.TTS)}
	}

	req := inferenceRequest{
		PipelineTasks: []inferenceTask{{
			TaskType: TaskTTS,
			Config: taskConfig{
				Language:     taskLanguage{SourceLanguage: sourceLanguage},
				ServiceID:    services[0].ServiceID,
				Gender:       DefaultVoiceGender,
				SamplingRate: DefaultTTSSamplingRate,
			},
		}},
		InputData: inputData{
			Input: []textInput{{Source: text}},
		},
	}

	resp, err := b.infer(ctx, pipeline, req)
	if err != nil {
		return nil, err
	}
	if len(resp.PipelineResponse) == 0 || len(resp.PipelineResponse[0].Audio) == 0 {
		return nil, fmt.Errorf("bhashini: empty TTS response")
	}

	audio, err := base64.StdEncoding.DecodeString(resp.PipelineResponse[0].Audio[0].AudioContent)
	if err != nil {
		return nil, fmt.Errorf("failed to decode TTS audio: %w", err)
	}
	return audio, nil
}

func (b *bhashiniImpl) Translate(ctx context.Context, text, sourceLanguage, targetLanguage string) (string, error) {
	pipeline, err := b.getPipeline(ctx)
	if err != nil {
		return "", err
	}

	targets, ok := pipeline.Translation[sourceLanguage]
	if !ok {
		return "", &UnsupportedLanguageError{Task: TaskTranslation, Language: sourceLanguage, Available: languageKeys(pipeline.Translation)}
	}

	services, ok := targets[targetLanguage]
	if !ok || len(services) == 0 {
		return "", &UnsupportedLanguageError{Task: TaskTranslation, Language: targetLanguage, Available: languageKeys(targets)}
	}

	req := inferenceRequest{
		PipelineTasks: []inferenceTask{{
			TaskType: TaskTranslation,
			Config: taskConfig{
				Language: taskLanguage{
					SourceLanguage: sourceLanguage,
					TargetLanguage: targetLanguage,
				},
				ServiceID: services[0].ServiceID,
			},
		}},
		InputData: inputData{
			Input: []textInput{{Source: text}},
		},
	}

	resp, err := b.infer(ctx, pipeline, req)
	if err != nil {
		return "", err
	}
	if len(resp.PipelineResponse) == 0 || len(resp.PipelineResponse[0].Output) == 0 {
		return "", fmt.Errorf("bhashini: empty translation response")
	}
	return resp.PipelineResponse[0].Output[0].Target, nil
}

func (b *bhashiniImpl) infer(ctx context.Context, pipeline *pipelineData, req inferenceRequest) (*inferenceResponse, error) {
	bodyBytes, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.config.InferenceEndpoint, bytes.NewBuffer(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "*/*")
	httpReq.Header.Set("Authorization", pipeline.InferenceAPIKey)

	resp, err := b.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call bhashini inference API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bhashini inference API error: %d", resp.StatusCode)
	}

	var out inferenceResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &out, nil
}

func languageKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
