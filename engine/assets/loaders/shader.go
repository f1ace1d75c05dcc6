package loaders

import (
	"fmt"
	"os"
)

// ShaderLoader reads compiled SPIR-V shader binaries.
type ShaderLoader struct{}

func (sl *ShaderLoader) Load(path string) (interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("shader %s: SPIR-V length %d is not a word multiple", path, len(data))
	}
	return data, nil
}
