package types

// SelectedFile is one blob picked by the user. Data is read once at selection time.
type SelectedFile struct {
	Name        string
	ContentType string
	Data        []byte
}

func (f SelectedFile) Size() int64 {
	return int64(len(f.Data))
}
