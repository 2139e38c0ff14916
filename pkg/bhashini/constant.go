package bhashini

import "time"

const (
	DefaultPipelineConfigEndpoint = "https://meity-auth.ulcacontrib.org/ulca/apis/v0/model/getModelsPipeline"
	DefaultInferenceEndpoint      = "https://dhruva-api.bhashini.gov.in/services/inference/pipeline"
	DefaultTimeout                = 30 * time.Second

	TaskASR         = "asr"
	TaskTTS         = "tts"
	TaskTranslation = "translation"

	DefaultAudioFormat     = "wav"
	DefaultASRSamplingRate = 16000
	DefaultTTSSamplingRate = 8000
	DefaultVoiceGender     = "female"
)
