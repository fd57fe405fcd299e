package frame_service

// SharedRegion именованная область памяти, доступная другим процессам
type SharedRegion struct {
	name string
	path string
	size int
	fd   int
	data []byte
}

func (r *SharedRegion) Name() string  { return r.name }
func (r *SharedRegion) Size() int     { return r.size }
func (r *SharedRegion) Bytes() []byte { return r.data }

// Path путь к файлу отображения; пустой для области в куче
func (r *SharedRegion) Path() string { return r.path }
