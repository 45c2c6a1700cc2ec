package config

const (
	defaultRegistryURL            = "http://127.0.0.1:9981"
	defaultRegistryTimeoutSeconds = 30
	defaultDetectorBinary         = "comskip"
	defaultProbeBinary            = "ffprobe"
	defaultEncoderBinary          = "ffmpeg"
	defaultBitrateFactor          = 0.6
	defaultWorkDir                = "~/.local/share/tvhshrink/work"
	defaultLogDir                 = "~/.local/share/tvhshrink/logs"
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
	defaultNotifyRequestTimeout   = 10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Registry: Registry{
			// URL intentionally empty so TVHEADEND_URL can supply it.
			TimeoutSeconds: defaultRegistryTimeoutSeconds,
		},
		Detector: Detector{
			Binary: defaultDetectorBinary,
		},
		Probe: Probe{
			Binary: defaultProbeBinary,
		},
		Encoder: Encoder{
			Binary:        defaultEncoderBinary,
			BitrateFactor: defaultBitrateFactor,
		},
		Paths: Paths{
			WorkDir: defaultWorkDir,
			LogDir:  defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
		},
	}
}
