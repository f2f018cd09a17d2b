package migrations

import (
	"context"
	"fmt"

	"hattucci/internal/database"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS registro (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            usuario TEXT NOT NULL UNIQUE,
            correo TEXT NOT NULL UNIQUE,
            nombre TEXT NOT NULL,
            apellido TEXT NOT NULL,
            telefono TEXT NOT NULL,
            contrasena TEXT NOT NULL
        );`,
	`CREATE TABLE IF NOT EXISTS inventario (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            producto TEXT NOT NULL,
            fecha_vencimiento TEXT NOT NULL,
            stock INTEGER NOT NULL,
            precio_venta REAL NOT NULL,
            UNIQUE(producto, precio_venta, fecha_vencimiento)
        );`,
	`CREATE TABLE IF NOT EXISTS compras (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            nombre_proveedor TEXT NOT NULL,
            contacto_proveedor TEXT NOT NULL,
            producto TEXT NOT NULL,
            cantidad INTEGER NOT NULL,
            precio_unitario REAL NOT NULL,
            fecha_registro TEXT NOT NULL,
            fecha_vencimiento TEXT NOT NULL
        );`,
	`CREATE INDEX IF NOT EXISTS idx_compras_fecha_registro ON compras (fecha_registro);`,
	`CREATE TABLE IF NOT EXISTS ventas (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            producto TEXT NOT NULL,
            cantidad INTEGER NOT NULL,
            total REAL NOT NULL,
            fecha_venta TEXT NOT NULL,
            numero_boleta INTEGER
        );`,
	`CREATE INDEX IF NOT EXISTS idx_ventas_fecha_venta ON ventas (fecha_venta);`,
	`CREATE TABLE IF NOT EXISTS boletas_correlativo (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            numero INTEGER NOT NULL UNIQUE
        );`,
}

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS registro (
            id BIGINT AUTO_INCREMENT PRIMARY KEY,
            usuario VARCHAR(100) NOT NULL UNIQUE,
            correo VARCHAR(150) NOT NULL UNIQUE,
            nombre VARCHAR(100) NOT NULL,
            apellido VARCHAR(100) NOT NULL,
            telefono VARCHAR(30) NOT NULL,
            contrasena VARCHAR(255) NOT NULL
        )`,
	`CREATE TABLE IF NOT EXISTS inventario (
            id BIGINT AUTO_INCREMENT PRIMARY KEY,
            producto VARCHAR(150) NOT NULL,
            fecha_vencimiento DATE NOT NULL,
            stock INT NOT NULL,
            precio_venta DECIMAL(10,2) NOT NULL,
            UNIQUE KEY uq_inventario_lote (producto, precio_venta, fecha_vencimiento)
        )`,
	`CREATE TABLE IF NOT EXISTS compras (
            id BIGINT AUTO_INCREMENT PRIMARY KEY,
            nombre_proveedor VARCHAR(150) NOT NULL,
            contacto_proveedor VARCHAR(150) NOT NULL,
            producto VARCHAR(150) NOT NULL,
            cantidad INT NOT NULL,
            precio_unitario DECIMAL(10,2) NOT NULL,
            fecha_registro DATE NOT NULL,
            fecha_vencimiento DATE NOT NULL,
            KEY idx_compras_fecha_registro (fecha_registro)
        )`,
	`CREATE TABLE IF NOT EXISTS ventas (
            id BIGINT AUTO_INCREMENT PRIMARY KEY,
            producto VARCHAR(150) NOT NULL,
            cantidad INT NOT NULL,
            total DECIMAL(10,2) NOT NULL,
            fecha_venta DATE NOT NULL,
            numero_boleta BIGINT NULL,
            KEY idx_ventas_fecha_venta (fecha_venta)
        )`,
	`CREATE TABLE IF NOT EXISTS boletas_correlativo (
            id BIGINT AUTO_INCREMENT PRIMARY KEY,
            numero BIGINT NOT NULL UNIQUE
        )`,
}

// Run creates the back-office schema for the connection's dialect.
func Run(ctx context.Context, db *database.DB) error {
	schema := sqliteSchema
	if db.Dialect == database.MySQL {
		schema = mysqlSchema
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
