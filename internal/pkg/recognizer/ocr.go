package recognizer

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"github.com/tidwall/gjson"
)

const defaultOCRTimeout = 20 * time.Second

// OCRConfig points at a PaddleOCR serving endpoint.
type OCRConfig struct {
	// Endpoint is the full predict URL, e.g. http://ocr:8866/predict/ocr_system.
	Endpoint string
}

// OCRRecognizer posts the image to a PaddleOCR serving endpoint. Every
// character of a detected line carries the confidence of that line.
type OCRRecognizer struct {
	endpoint string
}

func NewOCRRecognizer(cfg OCRConfig) (*OCRRecognizer, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("ocr endpoint is required")
	}
	return &OCRRecognizer{endpoint: cfg.Endpoint}, nil
}

func (r *OCRRecognizer) Name() string { return "paddleocr" }

func (r *OCRRecognizer) Transcribe(ctx context.Context, img Image, _ string) (Transcription, error) {
	timeout := defaultOCRTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	if timeout <= 0 {
		return Transcription{}, permanent(r.Name(), context.DeadlineExceeded)
	}

	agent := fiber.Post(r.endpoint).
		Timeout(timeout).
		JSON(fiber.Map{"images": []string{img.Base64()}})

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return Transcription{}, transient(r.Name(), errs[0])
	}
	if code != fiber.StatusOK {
		return Transcription{}, statusError(r.Name(), code, fmt.Errorf("status %d", code))
	}

	return r.parse(body)
}

func (r *OCRRecognizer) parse(body []byte) (Transcription, error) {
	if !gjson.ValidBytes(body) {
		return Transcription{}, permanent(r.Name(), fmt.Errorf("response is not valid json"))
	}
	if status := gjson.GetBytes(body, "status"); status.Exists() && status.String() != "000" {
		return Transcription{}, permanent(r.Name(), fmt.Errorf("status %s: %s", status.String(), gjson.GetBytes(body, "msg").String()))
	}

	out := Transcription{Source: r.Name(), Confidences: []float64{}}
	var text strings.Builder
	gjson.GetBytes(body, "results.0").ForEach(func(_, line gjson.Result) bool {
		s := line.Get("text").String()
		conf := line.Get("confidence").Float()
		text.WriteString(s)
		for i := 0; i < utf8.RuneCountInString(s); i++ {
			out.Confidences = append(out.Confidences, conf)
		}
		return true
	})
	out.Text = text.String()
	return out, nil
}
