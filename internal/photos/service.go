package photos

import (
	"errors"
	"fmt"

	"concessionaria-backend/internal/models"

	"gorm.io/gorm"
)

var ErrPhotoNotFound = errors.New("foto não encontrada")

// Todas as mutações de foto passam por estas funções, que mantêm as duas
// invariantes do conjunto: no máximo uma foto principal por carro (e
// exatamente uma quando o carro tem fotos) e ordem sequencial de exibição.
// Cada operação roda numa transação própria: nunca existe um instante
// observável com zero ou duas fotos principais.

// Add insere uma foto. Sem ordem explícita entra no fim da sequência;
// se o carro ainda não tem foto principal, a nova assume esse papel.
func Add(db *gorm.DB, vehicleID uint, filePath, description string, order *int) (*models.VehiclePhoto, error) {
	var photo models.VehiclePhoto

	err := db.Transaction(func(tx *gorm.DB) error {
		ord := 0
		if order != nil && *order > 0 {
			ord = *order
		} else {
			var maxOrder int
			if err := tx.Model(&models.VehiclePhoto{}).
				Where("vehicle_id = ?", vehicleID).
				Select("COALESCE(MAX(ordem), 0)").
				Scan(&maxOrder).Error; err != nil {
				return err
			}
			ord = maxOrder + 1
		}

		var primaryCount int64
		if err := tx.Model(&models.VehiclePhoto{}).
			Where("vehicle_id = ? AND is_primary = ?", vehicleID, true).
			Count(&primaryCount).Error; err != nil {
			return err
		}

		photo = models.VehiclePhoto{
			VehicleID:   vehicleID,
			FilePath:    filePath,
			Description: description,
			Order:       ord,
			IsPrimary:   primaryCount == 0,
		}
		return tx.Create(&photo).Error
	})
	if err != nil {
		return nil, fmt.Errorf("não foi possível adicionar a foto: %w", err)
	}
	return &photo, nil
}

// SetPrimary troca a foto principal do carro: limpa as demais e marca a
// alvo dentro da mesma transação.
func SetPrimary(db *gorm.DB, photoID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var photo models.VehiclePhoto
		if err := tx.First(&photo, photoID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPhotoNotFound
			}
			return err
		}

		if err := tx.Model(&models.VehiclePhoto{}).
			Where("vehicle_id = ? AND id <> ?", photo.VehicleID, photo.ID).
			Update("is_primary", false).Error; err != nil {
			return err
		}

		return tx.Model(&models.VehiclePhoto{}).
			Where("id = ?", photo.ID).
			Update("is_primary", true).Error
	})
}

// Remove apaga a foto e devolve o registro removido (para o chamador
// apagar o arquivo). Se era a principal, promove a sobrevivente de menor
// ordem.
func Remove(db *gorm.DB, photoID uint) (*models.VehiclePhoto, error) {
	var removed models.VehiclePhoto

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&removed, photoID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPhotoNotFound
			}
			return err
		}

		if err := tx.Delete(&models.VehiclePhoto{}, removed.ID).Error; err != nil {
			return err
		}

		if !removed.IsPrimary {
			return nil
		}

		var next models.VehiclePhoto
		err := tx.Where("vehicle_id = ?", removed.VehicleID).
			Order("ordem asc, data_upload asc").
			First(&next).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // carro ficou sem fotos
		}
		if err != nil {
			return err
		}

		return tx.Model(&models.VehiclePhoto{}).
			Where("id = ?", next.ID).
			Update("is_primary", true).Error
	})
	if err != nil {
		return nil, err
	}
	return &removed, nil
}

// Reorder atribui ordem 1..N seguindo a sequência dada. IDs que não
// pertencem ao carro são ignorados sem erro.
func Reorder(db *gorm.DB, vehicleID uint, orderedIDs []uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		pos := 1
		for _, id := range orderedIDs {
			result := tx.Model(&models.VehiclePhoto{}).
				Where("id = ? AND vehicle_id = ?", id, vehicleID).
				Update("ordem", pos)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected > 0 {
				pos++
			}
		}
		return nil
	})
}
