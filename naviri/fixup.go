package naviri

// topicAliases expands the shorthand most often typed into the address field.
var topicAliases = map[string]string{
	"S": "String", "s": "String", "string": "String",
	"A": "Array", "a": "Array", "array": "Array",
	"H": "Hash", "h": "Hash", "hash": "Hash",

	// qri reports File::new under the instance-method name.
	"File::new": "File#new",
}

// FixupTopic expands shorthand topics. Other input is returned unchanged.
func FixupTopic(topic string) string {
	if canonical, ok := topicAliases[topic]; ok {
		return canonical
	}
	return topic
}
