package contract

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// LoadDeployArtifact reads contract creation bytecode from a compiler
// output file. Three formats are detected automatically:
//   - Hardhat artifact:  {"bytecode": "0x6080..."}
//   - Foundry artifact:  {"bytecode": {"object": "0x6080..."}}
//   - raw hex file:      0x6080... (whitespace tolerated)
//
// The decoded bytecode is validated against its constructor prologue so a
// truncated or hand-edited artifact is rejected before anything is signed.
func LoadDeployArtifact(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading artifact: %w", err)
	}

	hexStr, err := artifactBytecodeHex(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	code, err := hex.DecodeString(strings.TrimPrefix(hexStr, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid bytecode hex in %s: %w", path, err)
	}
	if len(code) == 0 {
		return nil, fmt.Errorf("artifact %s has no bytecode; interfaces and abstract contracts cannot be deployed", path)
	}
	if err := ValidateCreationCode(code); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return code, nil
}

// artifactBytecodeHex extracts the bytecode hex string from artifact data.
func artifactBytecodeHex(data []byte) (string, error) {
	var artifact struct {
		Bytecode json.RawMessage `json:"bytecode"`
	}
	if json.Unmarshal(data, &artifact) == nil {
		if len(artifact.Bytecode) == 0 {
			return "", fmt.Errorf("artifact has no \"bytecode\" field")
		}

		// Hardhat: a plain hex string.
		var str string
		if json.Unmarshal(artifact.Bytecode, &str) == nil {
			return strings.TrimSpace(str), nil
		}

		// Foundry: an object carrying the hex under "object".
		var obj struct {
			Object string `json:"object"`
		}
		if json.Unmarshal(artifact.Bytecode, &obj) == nil && obj.Object != "" {
			return strings.TrimSpace(obj.Object), nil
		}

		return "", fmt.Errorf("\"bytecode\" is neither a hex string nor a {\"object\":\"0x...\"} object")
	}

	// Not JSON: treat the whole file as raw bytecode hex.
	raw := strings.TrimSpace(string(data))
	if raw == "" {
		return "", fmt.Errorf("artifact file is empty")
	}
	return raw, nil
}
