package config

type WorkerKeyStruct struct {
	ProgressQueue string
}

var WorkerKey = &WorkerKeyStruct{
	ProgressQueue: "progress_notify_queue",
}
