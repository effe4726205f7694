package domain

import "errors"

var (
	// ErrBackendBusy は生成バックエンドが過負荷またはレート制限中であることを示します。
	// 呼び出し元は時間をおいて再試行できます。
	ErrBackendBusy = errors.New("生成バックエンドが混雑しています。しばらくしてから再試行してください")
	// ErrNoImage は応答に画像が含まれていなかったことを示します。
	ErrNoImage = errors.New("生成結果に画像が含まれていませんでした")
	// ErrGenerationFailed は画像生成が失敗したことを示します。
	ErrGenerationFailed = errors.New("広告画像の生成に失敗しました")
)
