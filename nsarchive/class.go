package nsarchive

// ClassName resolves coder["$class"] to its class dictionary and returns
// $classname. The $classes list (the class's inheritance chain) is
// available to callers that need it but is not itself interpreted here —
// dispatch in this archive format is driven by $classname alone.
func ClassName(a *Archive, coder map[string]interface{}) (string, error) {
	classDict, err := Field(a, coder, "$class", DecodeDict)
	if err != nil {
		return "", err
	}
	return Field(a, classDict, "$classname", DecodeString)
}
