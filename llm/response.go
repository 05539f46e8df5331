/**
 * Copyright 2025 ByteDance Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package llm

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
)

// ErrMalformedResponse is returned when the model reply is not a valid EditResponse.
var ErrMalformedResponse = errors.New("malformed edit response")

// EditResponse is the structured reply expected from the model.
type EditResponse struct {
	EditedText string `json:"edited_text" jsonschema:"required,description=The edited version of the input text formatted in markdown"`
	Comments   string `json:"comments,omitempty" jsonschema:"description=Clear and educative comments explaining the reasoning behind the edits"`
}

var (
	schemaOnce sync.Once
	schemaJSON []byte
)

// OutputSchema returns the JSON schema of EditResponse.
func OutputSchema() []byte {
	schemaOnce.Do(func() {
		r := &jsonschema.Reflector{
			DoNotReference: true,
			ExpandedStruct: true,
		}
		js, err := json.MarshalIndent(r.Reflect(&EditResponse{}), "", "  ")
		if err != nil {
			panic(err)
		}
		schemaJSON = js
	})
	return schemaJSON
}

// OutputAppendix is appended to every role's instructions so the reply can be parsed.
func OutputAppendix() string {
	return fmt.Sprintf(`# Output format

Reply with a single JSON object and nothing else. It must validate against this schema:

%s

Put the complete edited text in "edited_text". Put your explanations, if any, in "comments".`, OutputSchema())
}

// ParseEditResponse extracts an EditResponse from a model reply. Markdown
// code fences and surrounding prose are tolerated.
func ParseEditResponse(content string) (*EditResponse, error) {
	body := strings.TrimSpace(content)
	start := strings.Index(body, "{")
	if start < 0 {
		return nil, errors.Wrap(ErrMalformedResponse, "no JSON object in reply")
	}
	// decoding stops at the end of the first object; trailing prose is ignored
	var resp EditResponse
	if err := json.NewDecoder(strings.NewReader(body[start:])).Decode(&resp); err != nil {
		return nil, errors.Wrapf(ErrMalformedResponse, "decode reply: %v", err)
	}
	if strings.TrimSpace(resp.EditedText) == "" {
		return nil, errors.Wrap(ErrMalformedResponse, "edited_text is empty")
	}
	resp.Comments = strings.TrimSpace(resp.Comments)
	return &resp, nil
}
